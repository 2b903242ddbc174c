package item

import (
	"catalog/domain"
	"context"
)

// Repository is the storage backend for items. Identifiers cross this
// boundary as opaque strings; ParseID turns a client supplied id into the
// backend's canonical form or fails with domain.ErrInvalidIdentifier.
type Repository interface {
	Close() error
	Ping(ctx context.Context) error
	ParseID(raw string) (string, error)
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	GetItems(ctx context.Context) ([]domain.Item, error)
	// GetItem returns nil without error when no item has the id.
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id, name, description string) error
	DeleteItem(ctx context.Context, id string) (bool, error)
}
