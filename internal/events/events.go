package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// Match event types.
const (
	TypeMatchRequested = "match.requested"
	TypeMatchAccepted  = "match.accepted"
	TypeMatchRejected  = "match.rejected"
)

// MatchEvent describes one committed transition of a match.
type MatchEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	JobAdID          uuid.UUID          `json:"job_ad_id"`
	JobApplicationID uuid.UUID          `json:"job_application_id"`
	Status           domain.MatchStatus `json:"status"`

	// Side is the party that performed the transition
	Side domain.MatchSide `json:"side"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewMatchEvent builds the event for m having moved to its current status
// through an action by side.
func NewMatchEvent(m *domain.Match, side domain.MatchSide) *MatchEvent {
	eventType := TypeMatchRequested
	switch m.Status {
	case domain.MatchStatusAccepted:
		eventType = TypeMatchAccepted
	case domain.MatchStatusRejected:
		eventType = TypeMatchRejected
	}
	return &MatchEvent{
		ID:               uuid.New(),
		Type:             eventType,
		JobAdID:          m.JobAdID,
		JobApplicationID: m.JobApplicationID,
		Status:           m.Status,
		Side:             side,
		OccurredAt:       time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *MatchEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *MatchEvent) error

// HandleEvent implements EventHandler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *MatchEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *MatchEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *MatchEvent) error { return nil }
