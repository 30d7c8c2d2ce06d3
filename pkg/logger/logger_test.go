package logger_test

import (
	"bytes"
	"testing"

	"github.com/nikolayk812/storefront/internal/core"
	"github.com/nikolayk812/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Config{Env: core.Production, Level: "warn", Out: &buf})
	log.Info().Msg("hidden")
	log.Warn().Str("key", "cart").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"cart"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Config{Env: core.Production, Level: "loud", Out: &buf})
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
