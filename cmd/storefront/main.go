package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/pkg/config"
	"github.com/nikolayk812/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	log := logger.New(logger.Config{Env: cfg.Environment(), Level: cfg.LogLevel})

	a, err := newApp(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		return 1
	}
	defer a.Close()

	if err := a.Run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		if isUserError(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		log.Error().Err(err).Strs("args", args).Msg("command failed")
		return 1
	}

	return 0
}

func isUserError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrEmailAlreadyInUse,
		domain.ErrEmailNotFound,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidProduct,
		domain.ErrProductNotFound,
		domain.ErrForbidden,
		domain.ErrNotAuthenticated,
		domain.ErrEmptyCart,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
