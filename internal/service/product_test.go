//go:build !integration

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/mocks"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

type recordingPhotos struct {
	removed []string
	err     error
}

func (r *recordingPhotos) Remove(path string) error {
	r.removed = append(r.removed, path)
	return r.err
}

func newProductFixture() (*ProductServiceImpl, *mocks.MockProductRepository, *cache.Store, *recordingPhotos) {
	repo := new(mocks.MockProductRepository)
	store := cache.NewStore()
	photos := &recordingPhotos{}
	svc := NewProductService(repo, photos, store, cache.NewCoordinator(store), 5).(*ProductServiceImpl)
	return svc, repo, store, photos
}

func TestProductService_Latest_ReadThrough(t *testing.T) {
	svc, repo, store, _ := newProductFixture()
	products := []model.Product{{ID: primitive.NewObjectID(), Name: "Phone"}}
	repo.On("Latest", mock.Anything, 5).Return(products, nil).Once()

	first, err := svc.Latest(context.Background())
	require.NoError(t, err)
	second, err := svc.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Phone", first[0].Name)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, store.Has(cache.LatestProductsKey()))
	repo.AssertExpectations(t)
}

func TestProductService_Categories_ErrorNotCached(t *testing.T) {
	svc, repo, store, _ := newProductFixture()
	repo.On("Categories", mock.Anything).Return(nil, errors.New("boom")).Once()

	_, err := svc.Categories(context.Background())

	assert.Error(t, err)
	assert.False(t, store.Has(cache.CategoriesKey()))
}

func TestProductService_Get(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name      string
		id        string
		setupMock func(*mocks.MockProductRepository)
		wantErr   error
		cached    bool
	}{
		{
			name: "found and cached",
			id:   id.Hex(),
			setupMock: func(m *mocks.MockProductRepository) {
				m.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, Name: "Phone"}, nil).Once()
			},
			cached: true,
		},
		{
			name: "missing product is not cached",
			id:   id.Hex(),
			setupMock: func(m *mocks.MockProductRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, nil).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "malformed id skips the store",
			id:        "not-an-id",
			setupMock: func(*mocks.MockProductRepository) {},
			wantErr:   ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store, _ := newProductFixture()
			tt.setupMock(repo)

			product, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Phone", product.Name)
			}
			assert.Equal(t, tt.cached, store.Has(cache.ProductKey(tt.id)))
			repo.AssertExpectations(t)
		})
	}
}

func seedProductCaches(store *cache.Store, id string) {
	for _, k := range append(cache.ProductListKeys(), cache.ProductKey(id), cache.AllOrdersKey()) {
		store.Set(k, []byte(`[]`))
	}
	for _, k := range cache.AdminKeys() {
		store.Set(k, []byte(`{}`))
	}
}

func TestProductService_Create_Invalidates(t *testing.T) {
	svc, repo, store, _ := newProductFixture()
	product := &model.Product{ID: primitive.NewObjectID(), Name: "Phone"}
	seedProductCaches(store, product.ID.Hex())
	repo.On("Create", mock.Anything, product).Return(nil)

	require.NoError(t, svc.Create(context.Background(), product))

	for _, k := range append(cache.ProductListKeys(), cache.AdminKeys()...) {
		assert.False(t, store.Has(k), k.String())
	}
	assert.False(t, store.Has(cache.ProductKey(product.ID.Hex())))
	assert.True(t, store.Has(cache.AllOrdersKey()), "order views are untouched")
}

func TestProductService_Create_FailureKeepsCache(t *testing.T) {
	svc, repo, store, _ := newProductFixture()
	store.Set(cache.LatestProductsKey(), []byte(`[]`))
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	err := svc.Create(context.Background(), &model.Product{Name: "Phone"})

	assert.Error(t, err)
	assert.True(t, store.Has(cache.LatestProductsKey()))
}

func TestProductService_Update(t *testing.T) {
	id := primitive.NewObjectID()
	newPhoto := "uploads/new.png"
	name := "Laptop"

	tests := []struct {
		name        string
		update      model.ProductUpdate
		setupMock   func(*mocks.MockProductRepository, model.ProductUpdate)
		wantErr     error
		wantRemoved []string
	}{
		{
			name:   "replaces photo",
			update: model.ProductUpdate{Photo: &newPhoto},
			setupMock: func(m *mocks.MockProductRepository, u model.ProductUpdate) {
				m.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, Photo: "uploads/old.png"}, nil)
				m.On("Update", mock.Anything, id, u).Return(&model.Product{ID: id, Photo: newPhoto}, nil)
			},
			wantRemoved: []string{"uploads/old.png"},
		},
		{
			name:   "keeps photo",
			update: model.ProductUpdate{Name: &name},
			setupMock: func(m *mocks.MockProductRepository, u model.ProductUpdate) {
				m.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, Photo: "uploads/old.png"}, nil)
				m.On("Update", mock.Anything, id, u).Return(&model.Product{ID: id, Name: name}, nil)
			},
		},
		{
			name:   "missing product",
			update: model.ProductUpdate{Name: &name},
			setupMock: func(m *mocks.MockProductRepository, _ model.ProductUpdate) {
				m.On("FindByID", mock.Anything, id).Return(nil, nil)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store, photos := newProductFixture()
			seedProductCaches(store, id.Hex())
			tt.setupMock(repo, tt.update)

			_, err := svc.Update(context.Background(), id.Hex(), tt.update)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, store.Has(cache.ProductKey(id.Hex())))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, photos.removed)
			assert.False(t, store.Has(cache.ProductKey(id.Hex())))
			assert.False(t, store.Has(cache.AdminStatsKey()))
			repo.AssertExpectations(t)
		})
	}
}

func TestProductService_Delete(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("removes photo and invalidates", func(t *testing.T) {
		svc, repo, store, photos := newProductFixture()
		photos.err = errors.New("already gone")
		seedProductCaches(store, id.Hex())
		repo.On("Delete", mock.Anything, id).Return(&model.Product{ID: id, Photo: "uploads/a.png"}, nil)

		require.NoError(t, svc.Delete(context.Background(), id.Hex()))

		assert.Equal(t, []string{"uploads/a.png"}, photos.removed)
		assert.False(t, store.Has(cache.ProductKey(id.Hex())))
		assert.False(t, store.Has(cache.AllProductsKey()))
	})

	t.Run("missing product", func(t *testing.T) {
		svc, repo, store, _ := newProductFixture()
		seedProductCaches(store, id.Hex())
		repo.On("Delete", mock.Anything, id).Return(nil, nil)

		err := svc.Delete(context.Background(), id.Hex())

		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, store.Has(cache.AllProductsKey()))
	})
}

func TestProductService_Search(t *testing.T) {
	svc, repo, store, _ := newProductFixture()
	search := model.ProductSearch{Search: "pho", Page: 1, PageSize: 8}
	repo.On("Search", mock.Anything, search).Return([]model.Product{{Name: "Phone"}}, int64(3), nil)

	page, err := svc.Search(context.Background(), search)

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPage)
	assert.Len(t, page.Products, 1)
	assert.Zero(t, store.Len(), "search results are never cached")
}

// Hex ids are case-insensitive, so every spelling of one id must share a single cache entry.
func TestProductService_MixedCaseIDSharesCacheEntry(t *testing.T) {
	id := primitive.NewObjectID()
	upper := strings.ToUpper(id.Hex())
	name := "Laptop"

	tests := []struct {
		name  string
		setup func(*mocks.MockProductRepository)
		write func(*ProductServiceImpl, *cache.Store) error
	}{
		{
			name: "update",
			setup: func(m *mocks.MockProductRepository) {
				m.On("Update", mock.Anything, id, mock.Anything).Return(&model.Product{ID: id, Name: name}, nil)
			},
			write: func(svc *ProductServiceImpl, _ *cache.Store) error {
				_, err := svc.Update(context.Background(), id.Hex(), model.ProductUpdate{Name: &name})
				return err
			},
		},
		{
			name: "delete",
			setup: func(m *mocks.MockProductRepository) {
				m.On("Delete", mock.Anything, id).Return(&model.Product{ID: id}, nil)
			},
			write: func(svc *ProductServiceImpl, _ *cache.Store) error {
				return svc.Delete(context.Background(), id.Hex())
			},
		},
		{
			name: "order placed",
			setup: func(m *mocks.MockProductRepository) {
				m.On("DecrementStock", mock.Anything, id, 1).Return(true, nil)
			},
			write: func(svc *ProductServiceImpl, store *cache.Store) error {
				orders := new(mocks.MockOrderRepository)
				orders.On("Create", mock.Anything, mock.Anything).Return(nil)
				placer := NewOrderService(orders, svc.products, store, cache.NewCoordinator(store))
				return placer.Place(context.Background(), &model.Order{
					ID:         primitive.NewObjectID(),
					User:       "uid-1",
					OrderItems: []model.OrderItem{{ProductID: id, Quantity: 1}},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store, _ := newProductFixture()
			repo.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, Name: "Phone", Photo: "uploads/a.png"}, nil)
			tt.setup(repo)

			_, err := svc.Get(context.Background(), upper)
			require.NoError(t, err)
			require.True(t, store.Has(cache.ProductKey(id.Hex())))
			require.False(t, store.Has(cache.ProductKey(upper)))

			require.NoError(t, tt.write(svc, store))

			assert.False(t, store.Has(cache.ProductKey(id.Hex())))
			assert.Zero(t, store.Len())
		})
	}
}
