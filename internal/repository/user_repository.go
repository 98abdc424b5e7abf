package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// UserRepository implements UserRepositoryInterface using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *MongoDB) *UserRepository {
	return &UserRepository{collection: db.Users}
}

// Create inserts a new user. The id is the uid issued by the identity provider
// and must be set by the caller.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by uid.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"_id": id})
}

// FindAll returns every user.
func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return findMany[model.User](ctx, r.collection, bson.M{})
}

// Delete removes a user and returns it.
func (r *UserRepository) Delete(ctx context.Context, id string) (*model.User, error) {
	return deleteOne[model.User](ctx, r.collection, bson.M{"_id": id})
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByGender returns the number of users of gender.
func (r *UserRepository) CountByGender(ctx context.Context, gender model.Gender) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"gender": gender})
}

// CountByRole returns the number of users with role.
func (r *UserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}

// CountCreatedBetween counts users created in [from, to).
func (r *UserRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, createdBetween(from, to))
}

// CreatedSince returns the creation times of users created at or after from.
func (r *UserRepository) CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error) {
	return createdSince(ctx, r.collection, from)
}

// BirthDates returns the date of birth of every user that has one.
func (r *UserRepository) BirthDates(ctx context.Context) ([]time.Time, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "dob": 1})
	docs, err := findMany[struct {
		DOB time.Time `bson:"dob"`
	}](ctx, r.collection, bson.M{"dob": bson.M{"$type": "date"}}, opts)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(docs))
	for i, d := range docs {
		dates[i] = d.DOB
	}
	return dates, nil
}
