package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// EventLogger writes entries as structured log events.
type EventLogger struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewEventLogger tags logger with the audit component.
func NewEventLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{
		logger: logger.With().Str("component", "audit").Logger(),
		now:    time.Now,
	}
}

// Log writes an audit entry.
func (l *EventLogger) Log(_ context.Context, entry Entry) error {
	if l == nil {
		return nil
	}
	entry = complete(entry, l.now())

	event := l.logger.Info()
	if entry.Result != ResultApplied {
		event = l.logger.Warn()
	}
	event = event.
		Str("audit_id", entry.ID).
		Str("actor", entry.Actor).
		Str("action", entry.Action).
		Str("resource_type", entry.ResourceType).
		Str("resource_id", entry.ResourceID).
		Str("result", entry.Result).
		Str("payload_digest", entry.PayloadDigest).
		Str("ip", entry.IP).
		Str("user_agent", entry.UserAgent).
		Time("created_at", entry.CreatedAt)
	if len(entry.Metadata) > 0 {
		event = event.RawJSON("metadata", entry.Metadata)
	}
	event.Msg("operator action")
	return nil
}
