package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// OrderRepository implements OrderRepositoryInterface using MongoDB.
type OrderRepository struct {
	collection *mongo.Collection
	users      string
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{
		collection: db.Orders,
		users:      db.Users.Name(),
	}
}

// Create inserts order and fills in its id and timestamps.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	now := time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = model.OrderProcessing
	}

	_, err := r.collection.InsertOne(ctx, order)
	return err
}

// withUserName returns the stages that copy the customer's name into userName.
func (r *OrderRepository) withUserName() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.users},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "customer"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "userName", Value: bson.D{{Key: "$first", Value: "$customer.name"}}},
		}}},
		{{Key: "$unset", Value: "customer"}},
	}
}

// FindByID finds an order by id, including the customer's name.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$limit", Value: 1}},
	}, r.withUserName()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	orders, err := decodeAll[model.Order](ctx, cursor)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// FindByUser returns every order placed by userID.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return findMany[model.Order](ctx, r.collection, bson.M{"user": userID})
}

// FindAll returns every order, including the customer's name.
func (r *OrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	cursor, err := r.collection.Aggregate(ctx, r.withUserName())
	if err != nil {
		return nil, err
	}
	return decodeAll[model.Order](ctx, cursor)
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.OrderStatus) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

// Delete removes an order and returns it.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return deleteOne[model.Order](ctx, r.collection, bson.M{"_id": id})
}

// Latest returns the limit most recently created orders.
func (r *OrderRepository) Latest(ctx context.Context, limit int) ([]model.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"orderItems": 1, "discount": 1, "total": 1, "status": 1, "createdAt": 1})
	return findMany[model.Order](ctx, r.collection, bson.M{}, opts)
}

// CountByStatus returns the number of orders in each status.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	groups, err := decodeAll[struct {
		Status model.OrderStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}](ctx, cursor)
	if err != nil {
		return nil, err
	}

	counts := make(map[model.OrderStatus]int64, len(groups))
	for _, g := range groups {
		counts[g.Status] = g.Count
	}
	return counts, nil
}

// Totals sums the money fields of orders created in [from, to).
func (r *OrderRepository) Totals(ctx context.Context, from, to time.Time) (model.OrderTotals, error) {
	sum := func(field string) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, 0}}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: createdBetween(from, to)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: sum("total")},
			{Key: "discount", Value: sum("discount")},
			{Key: "shippingCharges", Value: sum("shippingCharges")},
			{Key: "tax", Value: sum("tax")},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return model.OrderTotals{}, err
	}
	totals, err := decodeAll[model.OrderTotals](ctx, cursor)
	if err != nil {
		return model.OrderTotals{}, err
	}
	if len(totals) == 0 {
		return model.OrderTotals{}, nil
	}
	return totals[0], nil
}

// CreatedSince returns the orders created at or after from with the fields the histograms need.
func (r *OrderRepository) CreatedSince(ctx context.Context, from time.Time) ([]model.Order, error) {
	opts := options.Find().SetProjection(bson.M{"createdAt": 1, "total": 1, "discount": 1})
	return findMany[model.Order](ctx, r.collection, createdBetween(from, time.Time{}), opts)
}
