// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. Binding tags are checked
// by gin's validator; Validate methods cover rules the tags cannot express.
package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewUserRequest registers a user. Only ID is required when the user already exists.
// @Description Request to register a user
type NewUserRequest struct {
	ID     string `json:"_id" binding:"required" example:"firebase-uid-123"`
	Name   string `json:"name" example:"Jane Doe"`
	Email  string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
	Photo  string `json:"photo" example:"https://example.com/jane.png"`
	Gender string `json:"gender" example:"female"`
	// DOB is an RFC 3339 timestamp or a YYYY-MM-DD date.
	DOB string `json:"dob" example:"1998-04-12"`
} // @name NewUserRequest

// Validate checks the fields required to create a new user.
func (r *NewUserRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return &ValidationError{Field: "name", Message: "is required"}
	case strings.TrimSpace(r.Email) == "":
		return &ValidationError{Field: "email", Message: "is required"}
	case strings.TrimSpace(r.Photo) == "":
		return &ValidationError{Field: "photo", Message: "is required"}
	case !model.Gender(r.Gender).Valid():
		return &ValidationError{Field: "gender", Message: "must be male or female"}
	}
	if _, err := r.ParseDOB(); err != nil {
		return &ValidationError{Field: "dob", Message: "must be a valid date"}
	}
	return nil
}

// ParseDOB parses DOB as RFC 3339 or YYYY-MM-DD.
func (r *NewUserRequest) ParseDOB() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, r.DOB); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, r.DOB)
}

// ToModel converts the request into a user with the default role.
func (r *NewUserRequest) ToModel() *model.User {
	dob, _ := r.ParseDOB()
	return &model.User{
		ID:     r.ID,
		Name:   strings.TrimSpace(r.Name),
		Email:  strings.TrimSpace(r.Email),
		Photo:  r.Photo,
		Role:   model.RoleUser,
		Gender: model.Gender(r.Gender),
		DOB:    dob,
	}
}

// NewProductRequest carries the multipart form fields of a new product. The photo is a file part.
type NewProductRequest struct {
	Name     string  `form:"name" binding:"required"`
	Price    float64 `form:"price" binding:"required,gt=0"`
	Stock    int     `form:"stock" binding:"gte=0"`
	Category string  `form:"category" binding:"required"`
}

// ToModel converts the form into a product with a lower-cased category.
func (r *NewProductRequest) ToModel(photo string) *model.Product {
	return &model.Product{
		Name:     strings.TrimSpace(r.Name),
		Photo:    photo,
		Price:    r.Price,
		Stock:    r.Stock,
		Category: strings.ToLower(strings.TrimSpace(r.Category)),
	}
}

// UpdateProductRequest carries optional multipart form fields.
type UpdateProductRequest struct {
	Name     *string  `form:"name"`
	Price    *float64 `form:"price" binding:"omitempty,gt=0"`
	Stock    *int     `form:"stock" binding:"omitempty,gte=0"`
	Category *string  `form:"category"`
}

// ToModel converts the form into a partial update. Blank strings are ignored.
func (r *UpdateProductRequest) ToModel(photo string) model.ProductUpdate {
	var u model.ProductUpdate
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		name := strings.TrimSpace(*r.Name)
		u.Name = &name
	}
	if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
		category := strings.ToLower(strings.TrimSpace(*r.Category))
		u.Category = &category
	}
	u.Price = r.Price
	u.Stock = r.Stock
	if photo != "" {
		u.Photo = &photo
	}
	return u
}

// ProductSearchQuery holds the query string of GET /product/all.
type ProductSearchQuery struct {
	Search   string  `form:"search"`
	Category string  `form:"category"`
	Price    float64 `form:"price" binding:"gte=0"`
	Sort     string  `form:"sort" binding:"omitempty,oneof=asc dsc"`
	Page     int     `form:"page" binding:"gte=0"`
}

// ToModel converts the query into a search with the given page size.
func (q *ProductSearchQuery) ToModel(pageSize int) model.ProductSearch {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return model.ProductSearch{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.ToLower(strings.TrimSpace(q.Category)),
		MaxPrice: q.Price,
		Sort:     q.Sort,
		Page:     page,
		PageSize: pageSize,
	}
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	ProductID string  `json:"productId" binding:"required,objectid" example:"665f1c2b9d3e4a0012345678"`
}

// NewOrderRequest places an order.
// @Description Request to place an order
type NewOrderRequest struct {
	ShippingInfo    model.ShippingInfo `json:"shippingInfo"`
	User            string             `json:"user" binding:"required" example:"firebase-uid-123"`
	Subtotal        float64            `json:"subtotal" binding:"required,gt=0"`
	Tax             float64            `json:"tax" binding:"gte=0"`
	ShippingCharges float64            `json:"shippingCharges" binding:"gte=0"`
	Discount        float64            `json:"discount" binding:"gte=0"`
	Total           float64            `json:"total" binding:"required,gt=0"`
	OrderItems      []OrderItemRequest `json:"orderItems" binding:"required,min=1,dive"`
} // @name NewOrderRequest

// ToModel converts the request into an order in the Processing state.
// Product ids must already have passed the objectid binding check.
func (r *NewOrderRequest) ToModel() *model.Order {
	items := make([]model.OrderItem, 0, len(r.OrderItems))
	for _, it := range r.OrderItems {
		id, _ := primitive.ObjectIDFromHex(it.ProductID)
		items = append(items, model.OrderItem{
			Name:      it.Name,
			Photo:     it.Photo,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ProductID: id,
		})
	}
	return &model.Order{
		ShippingInfo:    r.ShippingInfo,
		User:            r.User,
		Subtotal:        r.Subtotal,
		Tax:             r.Tax,
		ShippingCharges: r.ShippingCharges,
		Discount:        r.Discount,
		Total:           r.Total,
		Status:          model.OrderProcessing,
		OrderItems:      items,
	}
}

// NewCouponRequest creates a coupon.
// @Description Request to create a coupon
type NewCouponRequest struct {
	Code   string  `json:"coupon" binding:"required" example:"SAVE100"`
	Amount float64 `json:"amount" binding:"required,gt=0" example:"100"`
} // @name NewCouponRequest

// PaymentIntentRequest asks the gateway for a payment intent.
// @Description Request to create a payment intent
type PaymentIntentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"1999"`
} // @name PaymentIntentRequest
