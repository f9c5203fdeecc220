package ports

import (
	"context"

	"memehub-backend/domain/events"
)

// EventBus publishes domain events to the analytics bus. Publishing is
// best-effort from the caller's perspective; services log failures and
// never fail the user-facing operation over them.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
