package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/rs/zerolog"
)

type SignupRequest struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	ProfileImage string
}

// Store mediates every identity transition of a single user session.
//
// Login, Signup, ResetPassword and UpdateProfile wait for the configured
// latency before reporting their outcome. Once started they run to
// completion: cancelling ctx neither shortens the wait nor aborts the
// transition.
type Store struct {
	mu    sync.Mutex
	state State

	storage  port.StateStorage
	registry port.CredentialRegistry
	notifier port.Notifier

	latency time.Duration
	newID   func() string
	log     zerolog.Logger
	pending atomic.Int32
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithLatency sets the simulated request latency.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.latency = d
	}
}

// WithIDGenerator replaces the generator of signup identity ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func NewStore(ctx context.Context, storage port.StateStorage, registry port.CredentialRegistry, notifier port.Notifier, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		registry: registry,
		notifier: notifier,
		newID:    uuid.NewString,
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "session").Logger()

	state, err := Hydrate(ctx, storage)
	switch {
	case err == nil:
		s.log.Debug().Str("user_id", state.Identity.ID).Msg("session restored")
	case IsAbsent(err):
		s.log.Debug().Msg("no persisted session")
	default:
		s.log.Warn().Err(err).Msg("persisted session discarded")
	}
	s.state = state

	return s
}

func (s *Store) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	ctx = context.WithoutCancel(ctx)
	defer s.begin()()

	identity, err := s.registry.Authenticate(email, password)
	if err != nil {
		s.log.Info().Str("email", email).Msg("login rejected")
		return domain.Identity{}, fmt.Errorf("login[%s]: %w", email, err)
	}

	state, err := s.commit(ctx, SignedIn(identity))
	if err != nil {
		return domain.Identity{}, err
	}

	s.log.Info().Str("user_id", identity.ID).Str("role", string(identity.Role)).Msg("logged in")

	return state.Identity, nil
}

// Signup starts a session for a new customer. The identity is not added to
// the credential registry, so the same credentials cannot log in later.
func (s *Store) Signup(ctx context.Context, req SignupRequest) (domain.Identity, error) {
	ctx = context.WithoutCancel(ctx)
	defer s.begin()()

	if s.registry.Exists(req.Email) {
		s.log.Info().Str("email", req.Email).Msg("signup rejected")
		return domain.Identity{}, fmt.Errorf("signup[%s]: %w", req.Email, domain.ErrEmailAlreadyInUse)
	}

	identity := domain.Identity{
		ID:           s.freshID(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileImage: req.ProfileImage,
		Role:         domain.RoleCustomer,
	}

	state, err := s.commit(ctx, SignedIn(identity))
	if err != nil {
		return domain.Identity{}, err
	}

	s.log.Info().Str("user_id", identity.ID).Msg("signed up")

	return state.Identity, nil
}

func (s *Store) freshID() string {
	for {
		id := s.newID()
		if id != "" && !s.registry.Owns(id) {
			return id
		}
	}
}

// Logout clears the session. The in-memory session is cleared even when the
// persisted copy cannot be removed.
func (s *Store) Logout(ctx context.Context) error {
	if _, err := s.commit(ctx, SignedOut()); err != nil {
		return err
	}

	s.log.Info().Msg("logged out")

	return nil
}

func (s *Store) ResetPassword(ctx context.Context, email string) error {
	ctx = context.WithoutCancel(ctx)
	defer s.begin()()

	if !s.registry.Exists(email) {
		return fmt.Errorf("reset password[%s]: %w", email, domain.ErrEmailNotFound)
	}

	if err := s.notifier.PasswordReset(ctx, email); err != nil {
		return fmt.Errorf("notifier.PasswordReset: %w", err)
	}

	return nil
}

// UpdateProfile merges update into the active identity and reports whether a
// session was active. Id and role cannot be changed.
func (s *Store) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Identity, bool, error) {
	ctx = context.WithoutCancel(ctx)
	defer s.begin()()

	state, err := s.commit(ctx, ProfileUpdated(update))
	if !state.Authenticated {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, true, err
	}

	s.log.Info().Str("user_id", state.Identity.ID).Msg("profile updated")

	return state.Identity, true, nil
}

func (s *Store) Current() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Identity, s.state.Authenticated
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Loading reports whether a simulated request is in flight.
func (s *Store) Loading() bool {
	return s.pending.Load() > 0
}

// begin marks a request in flight and waits out the simulated latency.
// The returned func ends the request.
func (s *Store) begin() func() {
	s.pending.Add(1)
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	return func() { s.pending.Add(-1) }
}

// commit applies action and mirrors the resulting state to storage. An
// anonymous session is mirrored by removing the record. When the mirror
// cannot be written the previous session stays active, except for sign out,
// which always ends the session.
func (s *Store) commit(ctx context.Context, action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := Reduce(prev, action)

	if action.Kind == ActionProfileUpdated && !prev.Authenticated {
		return prev, nil
	}

	if !next.Authenticated {
		s.state = next
		if err := s.storage.Delete(ctx, port.KeyUser); err != nil {
			return next, fmt.Errorf("storage.Delete: %w", err)
		}
		return next, nil
	}

	data, err := json.Marshal(next.Identity)
	if err != nil {
		return prev, fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.storage.Set(ctx, port.KeyUser, data); err != nil {
		s.log.Error().Err(err).Stringer("action", action.Kind).Msg("session not persisted, keeping previous state")
		return prev, fmt.Errorf("storage.Set: %w", err)
	}
	s.state = next

	return next, nil
}
