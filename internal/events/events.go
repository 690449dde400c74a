// Package events publishes catalog change notifications to an AMQP topic
// exchange. Publishing is fire-and-forget: failures are logged and never
// surface to the request that caused the change.
package events

import (
	"context"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	"github.com/google/uuid"
)

// Actions published by the domain modules.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// Event describes a catalog change. The routing key is derived as
// "<entity>.<action>".
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey returns the topic routing key for the event.
func (e Event) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Publisher emits catalog change events. Implementations log failures
// internally so callers never branch on delivery.
type Publisher interface {
	// Start connects the broker and registers lifecycle hooks.
	Start(lc *lifecycle.Coordinator) error

	// Publish emits the event. The occurred-at timestamp is stamped when
	// zero.
	Publish(ctx context.Context, event Event)
}

type noop struct{}

// NewNoop returns a publisher that drops every event. Used when events
// are disabled.
func NewNoop() Publisher {
	return noop{}
}

func (noop) Start(lc *lifecycle.Coordinator) error { return nil }

func (noop) Publish(context.Context, Event) {}
