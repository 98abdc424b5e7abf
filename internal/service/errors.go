package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for ids that are not valid ObjectIDs.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidCoupon is returned when a coupon code does not exist.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrConflict is returned when a write collides with an existing record.
	ErrConflict = errors.New("already exists")
	// ErrPaymentUnavailable is returned when no payment gateway is configured.
	ErrPaymentUnavailable = errors.New("payment gateway not configured")
)

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// parseObjectID converts a path id into an ObjectID.
func parseObjectID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", resource, id, ErrInvalidID)
	}
	return oid, nil
}
