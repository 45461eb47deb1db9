package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// NewCommandMonitor returns a Mongo command monitor that logs every
// command at debug level and warns about commands slower than
// slowThreshold. A zero threshold disables the slow command warning.
func NewCommandMonitor(logger zerolog.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	log := logger.With().Str("component", "mongo").Logger()

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			log.Debug().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Msg("database command started")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			ev := log.Debug()
			if slowThreshold > 0 && e.Duration >= slowThreshold {
				ev = log.Warn().Dur("threshold", slowThreshold)
			}

			ev.Str("command", e.CommandName).
				Int64("request_id", e.RequestID).
				Dur("duration", e.Duration).
				Msg("database command finished")
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			log.Error().
				Str("command", e.CommandName).
				Int64("request_id", e.RequestID).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("database command failed")
		},
	}
}

// GetMongoLogLevel maps the global level to the level database command
// logs are emitted at: verbose only when the application is verbose.
func GetMongoLogLevel(level zerolog.Level) zerolog.Level {
	if level <= zerolog.DebugLevel {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
