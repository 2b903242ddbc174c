// Package itemtest provides an in-memory item.Repository for tests. Ids use
// the Mongo ObjectID format so handlers see the same parse rules as in
// production.
package itemtest

import (
	"catalog/domain"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	mu    sync.Mutex
	order []string
	items map[string]domain.Item

	// Err, when set, is returned by every storage call.
	Err error
	// FetchErr, when set, is returned by GetItem only.
	FetchErr error

	Updates int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]domain.Item)}
}

func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	return r.Err
}

func (r *MemoryRepository) ParseID(raw string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return "", domain.ErrInvalidIdentifier
	}
	return oid.Hex(), nil
}

func (r *MemoryRepository) Create(_ context.Context, item domain.Item) (domain.Item, error) {
	if r.Err != nil {
		return domain.Item{}, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = primitive.NewObjectID().Hex()
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *MemoryRepository) GetItems(context.Context) ([]domain.Item, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var items []domain.Item
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MemoryRepository) GetItem(_ context.Context, id string) (*domain.Item, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.FetchErr != nil {
		return nil, r.FetchErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *MemoryRepository) UpdateItem(_ context.Context, id, name, description string) error {
	if r.Err != nil {
		return r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.Updates++
	item, ok := r.items[id]
	if !ok {
		return nil
	}
	item.Name = name
	item.Description = description
	r.items[id] = item
	return nil
}

func (r *MemoryRepository) DeleteItem(_ context.Context, id string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
