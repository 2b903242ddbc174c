package item

import (
	"catalog/pkg/events"
	"context"

	"go.uber.org/zap"
)

// publishEvent is best effort: a broker failure is logged and never fails
// the request that already changed the store.
func publishEvent(ctx context.Context, publisher events.Publisher, name, itemID string, payload any) {
	if publisher == nil {
		return
	}

	event := events.NewEvent(name, events.EventVersionV1, payload, events.NewHeaders(ctx))

	if err := publisher.Publish(ctx, events.ItemExchange, event); err != nil {
		zap.L().Error("Failed to publish item event",
			zap.String("event", name),
			zap.String("itemId", itemID),
			zap.Error(err),
		)
	}
}
