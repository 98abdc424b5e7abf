package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Category is always stored lower-cased.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Photo     string             `bson:"photo" json:"photo"`
	Price     float64            `bson:"price" json:"price"`
	Stock     int                `bson:"stock" json:"stock"`
	Category  string             `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductUpdate carries the fields of a partial product update. Nil fields are left unchanged.
type ProductUpdate struct {
	Name     *string
	Photo    *string
	Price    *float64
	Stock    *int
	Category *string
}

// Empty reports whether the update changes nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Photo == nil && u.Price == nil && u.Stock == nil && u.Category == nil
}

// ProductSearch filters the public product listing.
type ProductSearch struct {
	Search   string
	Category string
	MaxPrice float64
	// Sort is "asc" or "dsc" by price, empty for store order.
	Sort     string
	Page     int
	PageSize int
}

// ProductPage is one page of search results.
type ProductPage struct {
	Products  []Product `json:"products"`
	TotalPage int       `json:"totalPage"`
}
