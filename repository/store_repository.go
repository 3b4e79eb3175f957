package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-api/models"
)

// StoreRepository defines data access for storefronts.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	// FindByOwner returns the owner's non-deleted store.
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, error)
	FindByName(ctx context.Context, name string) (*models.Store, error)
	FindByStatus(ctx context.Context, status models.StoreStatus) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

type mongoStoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a mongo-backed StoreRepository.
func NewStoreRepository(db *mongo.Database) StoreRepository {
	return &mongoStoreRepository{collection: db.Collection("stores")}
}

func (r *mongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	store.CreatedAt = time.Now().UTC()
	store.UpdatedAt = store.CreatedAt
	_, err := r.collection.InsertOne(ctx, store)
	return err
}

func (r *mongoStoreRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *mongoStoreRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, error) {
	filter := bson.M{"owner": ownerID, "is_deleted": false}
	var store models.Store
	err := r.collection.FindOne(ctx, filter).Decode(&store)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *mongoStoreRepository) FindByName(ctx context.Context, name string) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&store)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *mongoStoreRepository) FindByStatus(ctx context.Context, status models.StoreStatus) ([]models.Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status, "is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *mongoStoreRepository) Update(ctx context.Context, store *models.Store) error {
	store.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": store.ID}, store)
	return err
}
