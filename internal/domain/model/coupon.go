package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Coupon is a discount code worth a fixed amount.
type Coupon struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code   string             `bson:"code" json:"code"`
	Amount float64            `bson:"amount" json:"amount"`
}
