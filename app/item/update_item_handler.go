package item

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"
)

type UpdateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type UpdateItemRequest struct {
	ItemID      string  `json:"-" params:"id"`
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

func NewUpdateItemHandler(repository Repository, eventPublisher events.Publisher) *UpdateItemHandler {
	return &UpdateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

// Handle sets name and description on the item and returns it as stored
// afterwards. A nil item means nothing matched the id; the update and the
// read back are separate calls, so a concurrent delete also yields nil.
func (h UpdateItemHandler) Handle(ctx context.Context, req *UpdateItemRequest) (*domain.Item, error) {
	id, err := h.repository.ParseID(req.ItemID)
	if err != nil {
		return nil, invalidIdentifier("item.update.invalid_id", err)
	}

	if err := validateRequest("update", req); err != nil {
		return nil, err
	}

	if err := h.repository.UpdateItem(ctx, id, *req.Name, *req.Description); err != nil {
		return nil, httperror.InternalServerError(
			"item.update.update_failed",
			"Failed to update item: "+err.Error(),
			nil,
		).WithCause(err)
	}

	item, err := h.repository.GetItem(ctx, id)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.update.fetch_failed",
			"Failed to fetch updated item: "+err.Error(),
			nil,
		).WithCause(err)
	}

	if item != nil {
		publishEvent(ctx, h.eventPublisher, events.ItemUpdatedEvent, item.ID, events.ItemUpdatedPayload{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			UpdatedAt:   time.Now().UTC(),
		})
	}

	return item, nil
}
