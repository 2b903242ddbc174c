package mongodb

import (
	"catalog/domain"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type itemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}

func (d itemDocument) toDomain() domain.Item {
	return domain.Item{
		ID:          formatID(d.ID),
		Name:        d.Name,
		Description: d.Description,
	}
}

// MongoRepository stores items in a single collection. The collection
// handle is safe for concurrent use and shared by all requests.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, uri, database, collection string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return NewMongoRepositoryFromCollection(client.Database(database).Collection(collection)), nil
}

func NewMongoRepositoryFromCollection(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Close() error {
	return r.collection.Database().Client().Disconnect(context.Background())
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoRepository) ParseID(raw string) (string, error) {
	oid, err := parseID(raw)
	if err != nil {
		return "", err
	}
	return formatID(oid), nil
}

func (r *MongoRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	doc := itemDocument{
		Name:        item.Name,
		Description: item.Description,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return domain.Item{}, fmt.Errorf("insert item: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Item{}, fmt.Errorf("insert item: unexpected id type %T", result.InsertedID)
	}

	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Item, 0)
	for cursor.Next(ctx) {
		var doc itemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (r *MongoRepository) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	item := doc.toDomain()
	return &item, nil
}

func (r *MongoRepository) UpdateItem(ctx context.Context, id, name, description string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "description", Value: description},
	}}}

	if _, err := r.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	return nil
}

func (r *MongoRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	return result.DeletedCount == 1, nil
}

func parseID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	return oid, nil
}

func formatID(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}
