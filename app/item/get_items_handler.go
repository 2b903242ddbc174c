package item

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetItemsHandler struct {
	repository Repository
}

func NewGetItemsHandler(repository Repository) *GetItemsHandler {
	return &GetItemsHandler{
		repository: repository,
	}
}

type GetItemsRequest struct{}

func (h GetItemsHandler) Handle(ctx context.Context, _ *GetItemsRequest) ([]domain.Item, error) {
	items, err := h.repository.GetItems(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.index.failed",
			"Failed to read items: "+err.Error(),
			nil,
		).WithCause(err)
	}

	if items == nil {
		items = make([]domain.Item, 0)
	}

	return items, nil
}
