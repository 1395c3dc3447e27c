package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the service-wide zerolog Logger: every line carries
// the service name so aggregated logs can be filtered per tenant.
// APP_ENV=dev (or development) switches to a human-friendly console
// writer; LOG_LEVEL overrides the default info threshold.
func NewLogger(env string) zerolog.Logger {
	var l zerolog.Logger
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	l = l.With().Timestamp().Str("service", "datenight").Logger()

	if lv, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lv != zerolog.NoLevel {
		l = l.Level(lv)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}
