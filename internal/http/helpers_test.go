//go:build !integration

package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/mocks"
)

const (
	testAdminID    = "admin-1"
	testCustomerID = "customer-1"
	testObjectID   = "665f1c2b9d3e4a0012345678"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServices struct {
	users     *mocks.MockUserService
	products  *mocks.MockProductService
	orders    *mocks.MockOrderService
	payments  *mocks.MockPaymentService
	dashboard *mocks.MockDashboardService
	photos    *memoryPhotos
}

func newTestServices() *testServices {
	return &testServices{
		users:     &mocks.MockUserService{},
		products:  &mocks.MockProductService{},
		orders:    &mocks.MockOrderService{},
		payments:  &mocks.MockPaymentService{},
		dashboard: &mocks.MockDashboardService{},
		photos:    &memoryPhotos{},
	}
}

func (s *testServices) routerConfig() RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.Users = s.users
	cfg.Products = s.products
	cfg.Orders = s.orders
	cfg.Payments = s.payments
	cfg.Dashboard = s.dashboard
	cfg.Photos = s.photos
	return cfg
}

func (s *testServices) assertExpectations(t *testing.T) {
	s.users.AssertExpectations(t)
	s.products.AssertExpectations(t)
	s.orders.AssertExpectations(t)
	s.payments.AssertExpectations(t)
	s.dashboard.AssertExpectations(t)
}

// allowAdmin lets testAdminID through AdminOnly and rejects testCustomerID.
func (s *testServices) allowAdmin() {
	s.users.On("Get", mock.Anything, testAdminID).
		Return(&model.User{ID: testAdminID, Name: "Admin", Role: model.RoleAdmin}, nil).Maybe()
	s.users.On("Get", mock.Anything, testCustomerID).
		Return(&model.User{ID: testCustomerID, Name: "Customer", Role: model.RoleUser}, nil).Maybe()
}

func newTestRouter(t *testing.T) (*gin.Engine, *testServices) {
	t.Helper()
	s := newTestServices()
	s.allowAdmin()
	t.Cleanup(func() { s.assertExpectations(t) })
	return NewRouter(NewHealthHandler(), s.routerConfig()), s
}

func newExpect(t *testing.T, handler http.Handler) *httpexpect.Expect {
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  "http://shop.test",
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Transport: httpexpect.NewBinder(handler),
			Jar:       httpexpect.NewCookieJar(),
		},
	})
}

// memoryPhotos records saved and removed photo paths.
type memoryPhotos struct {
	saved   []string
	removed []string
}

func (m *memoryPhotos) Save(_ io.Reader, originalName string) (string, error) {
	path := "uploads/" + strconv.Itoa(len(m.saved)+1) + filepath.Ext(originalName)
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *memoryPhotos) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}
