package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOne decodes the first match of filter, or returns (nil, nil) when nothing matches.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// findMany decodes every match of filter. The result is never nil.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](ctx, cursor)
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// deleteOne removes the first match of filter and returns it, or (nil, nil) when nothing matched.
func deleteOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var doc T
	err := coll.FindOneAndDelete(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// createdBetween matches documents created in [from, to). Zero bounds are open.
func createdBetween(from, to time.Time) bson.M {
	bounds := bson.M{}
	if !from.IsZero() {
		bounds["$gte"] = from
	}
	if !to.IsZero() {
		bounds["$lt"] = to
	}
	if len(bounds) == 0 {
		return bson.M{}
	}
	return bson.M{"createdAt": bounds}
}

type createdAtOnly struct {
	CreatedAt time.Time `bson:"createdAt"`
}

// createdSince returns the creation time of every document created at or after from.
func createdSince(ctx context.Context, coll *mongo.Collection, from time.Time) ([]time.Time, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "createdAt": 1})
	docs, err := findMany[createdAtOnly](ctx, coll, createdBetween(from, time.Time{}), opts)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, len(docs))
	for i, d := range docs {
		times[i] = d.CreatedAt
	}
	return times, nil
}
