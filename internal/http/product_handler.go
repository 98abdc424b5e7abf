package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// PhotoFormField is the multipart part holding a product photo.
const PhotoFormField = "photo"

// PhotoStorage stores uploaded product photos.
type PhotoStorage interface {
	Save(src io.Reader, originalName string) (string, error)
	Remove(path string) error
}

// ProductHandler serves /product routes.
type ProductHandler struct {
	products service.ProductService
	photos   PhotoStorage
	audit    *middleware.AsyncLogger
	pageSize int
}

// NewProductHandler creates a new ProductHandler. pageSize is the search page size.
func NewProductHandler(products service.ProductService, photos PhotoStorage, audit *middleware.AsyncLogger, pageSize int) *ProductHandler {
	return &ProductHandler{products: products, photos: photos, audit: audit, pageSize: pageSize}
}

// RegisterRoutes implements RouteGroup.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/product")
	g.POST("/new", admin, h.Create)
	g.GET("/all", h.Search)
	g.GET("/latest", h.Latest)
	g.GET("/categories", h.Categories)
	g.GET("/admin-products", admin, h.AdminProducts)
	g.GET("/:id", h.Get)
	g.PUT("/:id", admin, h.Update)
	g.DELETE("/:id", admin, h.Delete)
}

// Create godoc
// @Summary     Create a product
// @Tags        Products
// @Accept      multipart/form-data
// @Produce     json
// @Param       id       query    string true "Admin uid"
// @Param       name     formData string true "Name"
// @Param       price    formData number true "Price"
// @Param       stock    formData integer true "Stock"
// @Param       category formData string true "Category"
// @Param       photo    formData file   true "Photo"
// @Success     201 {object} dto.SuccessResponse
// @Failure     400 {object} dto.ErrorResponse
// @Router      /api/v1/product/new [post]
func (h *ProductHandler) Create(c *gin.Context) {
	rb := NewResponseBuilder(c)

	if _, err := c.FormFile(PhotoFormField); err != nil {
		rb.Error(http.StatusBadRequest, i18n.ErrKeyPhotoRequired, err)
		return
	}
	req, err := BindForm[dto.NewProductRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}

	photo, err := h.savePhoto(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	product := req.ToModel(photo)
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		h.discardPhoto(photo)
		middleware.AuditLogError(h.audit, c, middleware.ActionProductCreate, "Product create failed", err, nil)
		writeServiceError(c, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionProductCreate, "Product created",
		map[string]any{"product_id": product.ID.Hex(), "category": product.Category})
	rb.SuccessMessage(http.StatusCreated, i18n.SuccessKeyProductCreated, product)
}

// Search godoc
// @Summary     Search products
// @Description Filtered, paginated listing. Never cached.
// @Tags        Products
// @Produce     json
// @Param       search   query string false "Name contains"
// @Param       category query string false "Category"
// @Param       price    query number false "Maximum price"
// @Param       sort     query string false "asc or dsc by price"
// @Param       page     query int    false "Page, from 1"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/product/all [get]
func (h *ProductHandler) Search(c *gin.Context) {
	q, err := BindQuery[dto.ProductSearchQuery](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}
	page, err := h.products.Search(c.Request.Context(), q.ToModel(h.pageSize))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(page)
}

// Latest godoc
// @Summary     Latest products
// @Tags        Products
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/product/latest [get]
func (h *ProductHandler) Latest(c *gin.Context) {
	products, err := h.products.Latest(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(products)
}

// Categories godoc
// @Summary     Product categories
// @Tags        Products
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/product/categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(categories)
}

// AdminProducts godoc
// @Summary     All products for the admin catalog
// @Tags        Products
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/product/admin-products [get]
func (h *ProductHandler) AdminProducts(c *gin.Context) {
	products, err := h.products.AdminProducts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(products)
}

// Get godoc
// @Summary     Get a product
// @Tags        Products
// @Produce     json
// @Param       id path string true "Product id"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/product/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(product)
}

// Update godoc
// @Summary     Update a product
// @Description Partial update. Omitted fields keep their value; a new photo replaces the old one.
// @Tags        Products
// @Accept      multipart/form-data
// @Produce     json
// @Param       id       path     string true  "Product id"
// @Param       name     formData string false "Name"
// @Param       price    formData number false "Price"
// @Param       stock    formData integer false "Stock"
// @Param       category formData string false "Category"
// @Param       photo    formData file   false "Photo"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/product/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")
	req, err := BindForm[dto.UpdateProductRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}

	var photo string
	if _, err := c.FormFile(PhotoFormField); err == nil {
		if photo, err = h.savePhoto(c); err != nil {
			writeServiceError(c, err)
			return
		}
	}

	product, err := h.products.Update(c.Request.Context(), id, req.ToModel(photo))
	if err != nil {
		h.discardPhoto(photo)
		middleware.AuditLogError(h.audit, c, middleware.ActionProductUpdate, "Product update failed", err, map[string]any{"product_id": id})
		writeServiceError(c, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionProductUpdate, "Product updated", map[string]any{"product_id": id})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyProductUpdated, product)
}

// Delete godoc
// @Summary     Delete a product
// @Tags        Products
// @Produce     json
// @Param       id path string true "Product id"
// @Success     200 {object} dto.SuccessResponse{data=dto.DeletedResponse}
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionProductDelete, "Product delete failed", err, map[string]any{"product_id": id})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionProductDelete, "Product deleted", map[string]any{"product_id": id})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyProductDeleted, dto.DeletedResponse{ID: id})
}

var errPhotoStorageDisabled = errors.New("photo storage not configured")

func (h *ProductHandler) savePhoto(c *gin.Context) (string, error) {
	if h.photos == nil {
		return "", errPhotoStorageDisabled
	}
	header, err := c.FormFile(PhotoFormField)
	if err != nil {
		return "", err
	}
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.photos.Save(f, header.Filename)
}

func (h *ProductHandler) discardPhoto(path string) {
	if path == "" || h.photos == nil {
		return
	}
	if err := h.photos.Remove(path); err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Str("photo", path).Msg("Failed to remove unused photo")
	}
}
