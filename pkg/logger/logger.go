// Package logger configura zerolog para toda la aplicación: JSON en
// producción, consola coloreada en desarrollo.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones de arranque del logger.
type Config struct {
	Env   string // "development" activa la salida de consola
	Level string // nombre de nivel zerolog; inválido o vacío cae en info
}

// New construye el logger raíz y lo instala también como logger global de
// zerolog, para las librerías que escriben por log.Logger.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	root := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = root
	return root
}
