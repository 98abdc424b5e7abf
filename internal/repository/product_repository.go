package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// ProductRepository implements ProductRepositoryInterface using MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *MongoDB) *ProductRepository {
	return &ProductRepository{collection: db.Products}
}

// Create inserts product and fills in its id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	now := time.Now()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// FindByID finds a product by id.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return findOne[model.Product](ctx, r.collection, bson.M{"_id": id})
}

// FindAll returns every product in store order.
func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return findMany[model.Product](ctx, r.collection, bson.M{})
}

// Latest returns the limit most recently created products.
func (r *ProductRepository) Latest(ctx context.Context, limit int) ([]model.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return findMany[model.Product](ctx, r.collection, bson.M{}, opts)
}

// Categories returns the distinct product categories.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// searchFilter builds the filter shared by the page query and its count.
func searchFilter(search model.ProductSearch) bson.M {
	filter := bson.M{}
	if search.Search != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(search.Search), "$options": "i"}
	}
	if search.MaxPrice > 0 {
		filter["price"] = bson.M{"$lte": search.MaxPrice}
	}
	if search.Category != "" {
		filter["category"] = search.Category
	}
	return filter
}

// Search returns one page of products matching search and the total page count.
func (r *ProductRepository) Search(ctx context.Context, search model.ProductSearch) ([]model.Product, int64, error) {
	filter := searchFilter(search)

	pageSize := int64(max(search.PageSize, 1))
	page := int64(max(search.Page, 1))
	opts := options.Find().SetSkip((page - 1) * pageSize).SetLimit(pageSize)
	switch search.Sort {
	case "asc":
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "dsc":
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}

	products, err := findMany[model.Product](ctx, r.collection, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	matched, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	totalPage := int64(math.Ceil(float64(matched) / float64(pageSize)))
	return products, totalPage, nil
}

// Update applies the non-nil fields of update and returns the updated product.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, update model.ProductUpdate) (*model.Product, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Photo != nil {
		set["photo"] = *update.Photo
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product and returns it.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return deleteOne[model.Product](ctx, r.collection, bson.M{"_id": id})
}

// DecrementStock reduces the stock of a product by quantity. It reports false
// when the product does not exist.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Count returns the number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByCategory returns how many products each category holds.
func (r *ProductRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	groups, err := decodeAll[struct {
		Category string `bson:"_id"`
		Count    int    `bson:"count"`
	}](ctx, cursor)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.Category] = g.Count
	}
	return counts, nil
}

// CountOutOfStock returns the number of products with no stock left.
func (r *ProductRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"stock": bson.M{"$lte": 0}})
}

// CountCreatedBetween counts products created in [from, to).
func (r *ProductRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, createdBetween(from, to))
}

// CreatedSince returns the creation times of products created at or after from.
func (r *ProductRepository) CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error) {
	return createdSince(ctx, r.collection, from)
}
