package item

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"
)

type CreateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

// CreateItemRequest only carries the writable fields, a client supplied id
// is dropped while decoding.
type CreateItemRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type CreateItemResponse struct {
	InsertedID string `json:"insertedId"`
}

func NewCreateItemHandler(repository Repository, eventPublisher events.Publisher) *CreateItemHandler {
	return &CreateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (CreateItemResponse, error) {
	if err := validateRequest("create", req); err != nil {
		return CreateItemResponse{}, err
	}

	item, err := h.repository.Create(ctx, domain.Item{
		Name:        *req.Name,
		Description: *req.Description,
	})
	if err != nil {
		return CreateItemResponse{}, httperror.InternalServerError(
			"item.create.create_failed",
			"Failed to create item: "+err.Error(),
			nil,
		).WithCause(err)
	}

	publishEvent(ctx, h.eventPublisher, events.ItemCreatedEvent, item.ID, events.ItemCreatedPayload{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   time.Now().UTC(),
	})

	return CreateItemResponse{InsertedID: item.ID}, nil
}
