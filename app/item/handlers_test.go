package item_test

import (
	"catalog/app/item"
	"catalog/app/item/itemtest"
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ item.Repository = (*itemtest.MemoryRepository)(nil)

const missingID = "64b7f0c2a1b2c3d4e5f60718"

func ptr(s string) *string {
	return &s
}

func newCreateRequest(name, description string) *item.CreateItemRequest {
	return &item.CreateItemRequest{Name: ptr(name), Description: ptr(description)}
}

func newUpdateRequest(id, name, description string) *item.UpdateItemRequest {
	return &item.UpdateItemRequest{ItemID: id, Name: ptr(name), Description: ptr(description)}
}

func requireHTTPError(t *testing.T, err error, status int) *httperror.Error {
	t.Helper()
	var httpErr *httperror.Error
	require.True(t, errors.As(err, &httpErr), "expected *httperror.Error, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestCreateItemReturnsInsertedID(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	publisher := &itemtest.RecordingPublisher{}
	handler := item.NewCreateItemHandler(repo, publisher)

	res, err := handler.Handle(context.Background(), newCreateRequest("a", "b"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.InsertedID)

	items, err := item.NewGetItemsHandler(repo).Handle(context.Background(), &item.GetItemsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: res.InsertedID, Name: "a", Description: "b"}}, items)
	assert.Equal(t, []string{events.ItemCreatedEvent}, publisher.Names())
}

func TestCreateItemAllowsEmptyFields(t *testing.T) {
	repo := itemtest.NewMemoryRepository()

	res, err := item.NewCreateItemHandler(repo, nil).Handle(context.Background(), newCreateRequest("", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, res.InsertedID)
}

func TestCreateItemRejectsMissingFields(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	handler := item.NewCreateItemHandler(repo, nil)

	for _, req := range []*item.CreateItemRequest{
		{},
		{Name: ptr("a")},
		{Description: ptr("b")},
	} {
		_, err := handler.Handle(context.Background(), req)
		requireHTTPError(t, err, http.StatusBadRequest)
	}

	items, err := repo.GetItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateItemStorageFailure(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	repo.Err = errors.New("server selection timeout")
	publisher := &itemtest.RecordingPublisher{}

	_, err := item.NewCreateItemHandler(repo, publisher).Handle(context.Background(), newCreateRequest("a", ""))

	httpErr := requireHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Failed to create item: server selection timeout", httpErr.Message)
	assert.ErrorIs(t, err, repo.Err)
	assert.Empty(t, publisher.Names())
}

func TestCreateItemIgnoresPublisherFailure(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	publisher := &itemtest.RecordingPublisher{Err: errors.New("broker down")}

	res, err := item.NewCreateItemHandler(repo, publisher).Handle(context.Background(), newCreateRequest("a", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, res.InsertedID)
}

func TestGetItemsEmptyCollection(t *testing.T) {
	items, err := item.NewGetItemsHandler(itemtest.NewMemoryRepository()).Handle(context.Background(), &item.GetItemsRequest{})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetItemsStorageFailure(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	repo.Err = errors.New("cursor killed")

	_, err := item.NewGetItemsHandler(repo).Handle(context.Background(), &item.GetItemsRequest{})

	requireHTTPError(t, err, http.StatusInternalServerError)
}

func TestUpdateItemInvalidIdentifier(t *testing.T) {
	repo := itemtest.NewMemoryRepository()

	_, err := item.NewUpdateItemHandler(repo, nil).Handle(context.Background(), &item.UpdateItemRequest{
		ItemID: "not-an-id",
		Name:   ptr("x"),
	})

	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, item.InvalidIdentifierMessage, httpErr.Message)
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
	assert.Zero(t, repo.Updates)
}

func TestUpdateItemMissingReturnsNil(t *testing.T) {
	publisher := &itemtest.RecordingPublisher{}

	updated, err := item.NewUpdateItemHandler(itemtest.NewMemoryRepository(), publisher).Handle(context.Background(), &item.UpdateItemRequest{
		ItemID:      missingID,
		Name:        ptr("x"),
		Description: ptr("y"),
	})

	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, publisher.Names())
}

func TestUpdateItemReturnsStoredItem(t *testing.T) {
	ctx := context.Background()
	repo := itemtest.NewMemoryRepository()
	publisher := &itemtest.RecordingPublisher{}
	created, err := item.NewCreateItemHandler(repo, nil).Handle(ctx, newCreateRequest("a", "b"))
	require.NoError(t, err)

	updated, err := item.NewUpdateItemHandler(repo, publisher).Handle(ctx, &item.UpdateItemRequest{
		ItemID:      created.InsertedID,
		Name:        ptr("c"),
		Description: ptr("d"),
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.Item{ID: created.InsertedID, Name: "c", Description: "d"}, *updated)
	assert.Equal(t, []string{events.ItemUpdatedEvent}, publisher.Names())
}

func TestUpdateItemStorageFailures(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	repo.Err = errors.New("write conflict")

	_, err := item.NewUpdateItemHandler(repo, nil).Handle(context.Background(), newUpdateRequest(missingID, "c", "d"))
	httpErr := requireHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Failed to update item: write conflict", httpErr.Message)

	repo.Err = nil
	repo.FetchErr = errors.New("read timeout")

	_, err = item.NewUpdateItemHandler(repo, nil).Handle(context.Background(), newUpdateRequest(missingID, "c", "d"))
	httpErr = requireHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Failed to fetch updated item: read timeout", httpErr.Message)
}

func TestUpdateItemRejectsMissingFieldsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	repo := itemtest.NewMemoryRepository()
	created, err := item.NewCreateItemHandler(repo, nil).Handle(ctx, newCreateRequest("lamp", "brass"))
	require.NoError(t, err)

	_, err = item.NewUpdateItemHandler(repo, nil).Handle(ctx, &item.UpdateItemRequest{
		ItemID: created.InsertedID,
		Name:   ptr("c"),
	})

	requireHTTPError(t, err, http.StatusBadRequest)
	assert.Zero(t, repo.Updates)
	stored, err := repo.GetItem(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: created.InsertedID, Name: "lamp", Description: "brass"}, *stored)
}

func TestDeleteItemOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := itemtest.NewMemoryRepository()
	publisher := &itemtest.RecordingPublisher{}
	created, err := item.NewCreateItemHandler(repo, nil).Handle(ctx, newCreateRequest("a", ""))
	require.NoError(t, err)

	handler := item.NewDeleteItemHandler(repo, publisher)

	deleted, err := handler.Handle(ctx, &item.DeleteItemRequest{ItemID: created.InsertedID})
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = handler.Handle(ctx, &item.DeleteItemRequest{ItemID: created.InsertedID})
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, []string{events.ItemDeletedEvent}, publisher.Names())
}

func TestDeleteItemInvalidIdentifier(t *testing.T) {
	_, err := item.NewDeleteItemHandler(itemtest.NewMemoryRepository(), nil).Handle(context.Background(), &item.DeleteItemRequest{ItemID: "42"})

	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid ObjectId", httpErr.Message)
}

func TestDeleteItemStorageFailure(t *testing.T) {
	repo := itemtest.NewMemoryRepository()
	repo.Err = errors.New("not primary")

	_, err := item.NewDeleteItemHandler(repo, nil).Handle(context.Background(), &item.DeleteItemRequest{ItemID: missingID})

	httpErr := requireHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Failed to delete item: not primary", httpErr.Message)
}

func TestEventsCarryCorrelationID(t *testing.T) {
	ctx := events.WithCorrelationID(context.Background(), "req-7")
	publisher := &itemtest.RecordingPublisher{}

	_, err := item.NewCreateItemHandler(itemtest.NewMemoryRepository(), publisher).Handle(ctx, newCreateRequest("a", ""))
	require.NoError(t, err)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "req-7", publisher.Events[0].CorrelationID)
}
