package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Notification is a transient, user-facing notice.
type Notification struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	SessionKey string    `json:"sessionKey,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "mdformat/events/session"

// WithSession returns a derived context annotated with the given session key
// (the document being formatted) so notices can be attributed to it.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateNotification(eventType EventType, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info Notification.
func NewInfo(message string) Notification {
	return CreateNotification(EventInfo, message)
}

// NewWarn creates a warn Notification.
func NewWarn(message string) Notification {
	return CreateNotification(EventWarn, message)
}

// NewError creates an error Notification.
func NewError(message string) Notification {
	return CreateNotification(EventError, message)
}

// NewSuccess creates a success Notification.
func NewSuccess(message string) Notification {
	return CreateNotification(EventSuccess, message)
}
