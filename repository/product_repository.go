package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/models"
)

// ProductRepository defines data access for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	// FindByID resolves a product regardless of its deletion flag so that
	// historical order references keep working.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// FindByStore returns a store's non-deleted products.
	FindByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Product, error)
	// FindActive lists active, non-deleted products with optional text
	// search and pagination.
	FindActive(ctx context.Context, query string, page, limit int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a mongo-backed ProductRepository.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (r *mongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) FindByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Product, error) {
	filter := bson.M{"store": storeID, "is_deleted": false}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) FindActive(ctx context.Context, query string, page, limit int) ([]models.Product, int64, error) {
	filter := bson.M{"is_deleted": false, "is_active": true}
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return err
}
