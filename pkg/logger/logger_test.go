package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Activos-api/pkg/logger"
)

func TestNew_RespetaElNivelConfigurado(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNew_NivelInvalidoCaeEnInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l = logger.New(logger.Config{Env: "development"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
