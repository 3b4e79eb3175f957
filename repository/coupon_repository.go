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

// CouponRepository defines data access for discount coupons.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error)
	// RecordRedemption appends the user to usedBy and increments usedCount
	// in a single write. The preceding validity check is a separate read,
	// so two concurrent redemptions can still overrun the limit.
	RecordRedemption(ctx context.Context, id, userID primitive.ObjectID) error
	Deactivate(ctx context.Context, code string) error
}

type mongoCouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a mongo-backed CouponRepository.
func NewCouponRepository(db *mongo.Database) CouponRepository {
	return &mongoCouponRepository{collection: db.Collection("coupons")}
}

func (r *mongoCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, coupon)
	return err
}

func (r *mongoCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *mongoCouponRepository) FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *mongoCouponRepository) RecordRedemption(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{
		"$inc":      bson.M{"used_count": 1},
		"$addToSet": bson.M{"used_by": userID},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *mongoCouponRepository) Deactivate(ctx context.Context, code string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
