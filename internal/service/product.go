package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

// PhotoRemover deletes a stored product photo.
type PhotoRemover interface {
	Remove(path string) error
}

// ProductService provides catalog reads and admin writes.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) error
	Latest(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	AdminProducts(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, search model.ProductSearch) (model.ProductPage, error)
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	products    repository.ProductRepositoryInterface
	photos      PhotoRemover
	cache       cache.Cache
	coordinator *cache.Coordinator
	latestLimit int
}

// NewProductService creates a new product service. latestLimit bounds the latest-products listing.
func NewProductService(
	products repository.ProductRepositoryInterface,
	photos PhotoRemover,
	c cache.Cache,
	coordinator *cache.Coordinator,
	latestLimit int,
) ProductService {
	return &ProductServiceImpl{
		products:    products,
		photos:      photos,
		cache:       c,
		coordinator: coordinator,
		latestLimit: latestLimit,
	}
}

var (
	latestProductsKey = cache.NewTyped[[]model.Product](cache.LatestProductsKey())
	categoriesKey     = cache.NewTyped[[]string](cache.CategoriesKey())
	allProductsKey    = cache.NewTyped[[]model.Product](cache.AllProductsKey())
)

func (s *ProductServiceImpl) Create(ctx context.Context, product *model.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.coordinator.Invalidate(cache.Request{
		ProductChanged: true,
		AdminChanged:   true,
		ProductIDs:     []string{product.ID.Hex()},
	})
	return nil
}

func (s *ProductServiceImpl) Latest(ctx context.Context) ([]model.Product, error) {
	return cache.ReadThrough(ctx, s.cache, latestProductsKey, func(ctx context.Context) ([]model.Product, error) {
		return s.products.Latest(ctx, s.latestLimit)
	})
}

func (s *ProductServiceImpl) Categories(ctx context.Context) ([]string, error) {
	return cache.ReadThrough(ctx, s.cache, categoriesKey, s.products.Categories)
}

func (s *ProductServiceImpl) AdminProducts(ctx context.Context) ([]model.Product, error) {
	return cache.ReadThrough(ctx, s.cache, allProductsKey, s.products.FindAll)
}

// Get returns one product. Malformed ids fail before the cache is consulted.
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, err := parseObjectID("product", id)
	if err != nil {
		return nil, err
	}

	key := cache.NewTyped[*model.Product](cache.ProductKey(oid.Hex()))
	return cache.ReadThrough(ctx, s.cache, key, func(ctx context.Context) (*model.Product, error) {
		product, err := s.products.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, notFound("product")
		}
		return product, nil
	})
}

// Update applies a partial update. A replaced photo is removed from storage.
func (s *ProductServiceImpl) Update(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error) {
	oid, err := parseObjectID("product", id)
	if err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("product")
	}

	updated, err := s.products.Update(ctx, oid, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound("product")
	}

	if update.Photo != nil && existing.Photo != "" && existing.Photo != *update.Photo {
		s.removePhoto(existing.Photo)
	}

	s.coordinator.Invalidate(cache.Request{
		ProductChanged: true,
		AdminChanged:   true,
		ProductIDs:     []string{oid.Hex()},
	})
	return updated, nil
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID("product", id)
	if err != nil {
		return err
	}

	deleted, err := s.products.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == nil {
		return notFound("product")
	}

	s.removePhoto(deleted.Photo)
	s.coordinator.Invalidate(cache.Request{
		ProductChanged: true,
		AdminChanged:   true,
		ProductIDs:     []string{oid.Hex()},
	})
	return nil
}

// Search serves the filtered listing straight from the store.
func (s *ProductServiceImpl) Search(ctx context.Context, search model.ProductSearch) (model.ProductPage, error) {
	products, totalPage, err := s.products.Search(ctx, search)
	if err != nil {
		return model.ProductPage{}, err
	}
	return model.ProductPage{Products: products, TotalPage: int(totalPage)}, nil
}

func (s *ProductServiceImpl) removePhoto(path string) {
	if path == "" || s.photos == nil {
		return
	}
	if err := s.photos.Remove(path); err != nil {
		log.Warn().Err(err).Str("photo", path).Msg("Failed to remove product photo")
	}
}
