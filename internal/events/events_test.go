package events_test

import (
	"context"
	"testing"

	"github.com/JaimeStill/catalog-admin/internal/events"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	"github.com/google/uuid"
)

func TestEventRoutingKey(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{
			name:  "product created",
			event: events.Event{Entity: "product", Action: events.ActionCreated},
			want:  "product.created",
		},
		{
			name:  "category deleted",
			event: events.Event{Entity: "category", Action: events.ActionDeleted},
			want:  "category.deleted",
		},
		{
			name:  "product imported",
			event: events.Event{Entity: "product", Action: events.ActionImported},
			want:  "product.imported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.RoutingKey(); got != tt.want {
				t.Errorf("RoutingKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	pub := events.NewNoop()

	if err := pub.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Publishing must be safe with no broker behind it.
	pub.Publish(context.Background(), events.Event{
		Entity: "product",
		Action: events.ActionUpdated,
		ID:     uuid.New(),
	})
}
