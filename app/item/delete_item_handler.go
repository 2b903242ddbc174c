package item

import (
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"
)

type DeleteItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteItemHandler(repository Repository, eventPublisher events.Publisher) *DeleteItemHandler {
	return &DeleteItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteItemRequest struct {
	ItemID string `json:"-" params:"id"`
}

// Handle reports whether exactly one item was removed.
func (h DeleteItemHandler) Handle(ctx context.Context, req *DeleteItemRequest) (bool, error) {
	id, err := h.repository.ParseID(req.ItemID)
	if err != nil {
		return false, invalidIdentifier("item.destroy.invalid_id", err)
	}

	deleted, err := h.repository.DeleteItem(ctx, id)
	if err != nil {
		return false, httperror.InternalServerError(
			"item.destroy.failed",
			"Failed to delete item: "+err.Error(),
			nil,
		).WithCause(err)
	}

	if deleted {
		publishEvent(ctx, h.eventPublisher, events.ItemDeletedEvent, id, events.ItemDeletedPayload{
			ID:        id,
			DeletedAt: time.Now().UTC(),
		})
	}

	return deleted, nil
}
