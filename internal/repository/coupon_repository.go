package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// CouponRepository implements CouponRepositoryInterface using MongoDB.
type CouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a new coupon repository.
func NewCouponRepository(db *MongoDB) *CouponRepository {
	return &CouponRepository{collection: db.Coupons}
}

// Create inserts a coupon. A duplicate code fails with a duplicate key error.
func (r *CouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, coupon)
	return err
}

// FindByCode finds a coupon by its code.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return findOne[model.Coupon](ctx, r.collection, bson.M{"code": code})
}

// FindAll returns every coupon.
func (r *CouponRepository) FindAll(ctx context.Context) ([]model.Coupon, error) {
	return findMany[model.Coupon](ctx, r.collection, bson.M{})
}

// Delete removes a coupon and returns it.
func (r *CouponRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	return deleteOne[model.Coupon](ctx, r.collection, bson.M{"_id": id})
}
