package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

const photoCacheControl = "public, max-age=86400"

// ProductHandler serves product browsing and admin CRUD
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         product
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Name"
// @Param        description formData string true "Description"
// @Param        price formData string true "Price"
// @Param        category formData string true "Category ID"
// @Param        quantity formData string true "Quantity"
// @Param        shipping formData string false "yes, no, true, false, 1 or 0"
// @Param        photo formData file true "Photo, at most 1MB"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /product/create-product [post]
func (h *ProductHandler) Create(c *gin.Context) {
	req, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, "Product Created Successfully", product)
}

// Update godoc
// @Summary      Update a product
// @Tags         product
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        pid path string true "Product ID" format(uuid)
// @Param        name formData string true "Name"
// @Param        description formData string true "Description"
// @Param        price formData string true "Price"
// @Param        category formData string true "Category ID"
// @Param        quantity formData string true "Quantity"
// @Param        shipping formData string false "yes or no"
// @Param        photo formData file false "Replacement photo"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /product/update-product/{pid} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		h.HandleDomainError(c, catalogapp.ErrProductNotFound)
		return
	}
	req, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, "Product Updated Successfully", product)
}

// List godoc
// @Summary      Newest products
// @Tags         product
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.ProductList]
// @Router       /product/get-product [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.Newest(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "ALlProducts ", products)
}

// Get godoc
// @Summary      Get a product by slug
// @Tags         product
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /product/get-product/{slug} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Single Product Fetched", product)
}

// Photo godoc
// @Summary      Product photo bytes
// @Tags         product
// @Produce      image/png,image/jpeg
// @Param        pid path string true "Product ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Router       /product/product-photo/{pid} [get]
func (h *ProductHandler) Photo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		h.HandleDomainError(c, catalogapp.ErrPhotoNotFound)
		return
	}
	data, contentType, err := h.productService.Photo(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Header("Cache-Control", photoCacheControl)
	c.Data(http.StatusOK, contentType, data)
}

// Delete godoc
// @Summary      Delete a product and its photo
// @Tags         product
// @Produce      json
// @Security     BearerAuth
// @Param        pid path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[any]
// @Failure      404 {object} ErrorResponse
// @Router       /product/delete-product/{pid} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		h.HandleDomainError(c, catalogapp.ErrProductNotFound)
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Product Deleted successfully", nil)
}

// Filter godoc
// @Summary      Filter products by categories and price range
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductFilterRequest true "Filter"
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /product/product-filters [post]
func (h *ProductHandler) Filter(c *gin.Context) {
	var req catalogapp.ProductFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	products, err := h.productService.Filter(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", products)
}

// Count godoc
// @Summary      Number of products
// @Tags         product
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Router       /product/product-count [get]
func (h *ProductHandler) Count(c *gin.Context) {
	total, err := h.productService.Count(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", CountData{Total: total})
}

// Page godoc
// @Summary      One page of products
// @Tags         product
// @Produce      json
// @Param        page path int true "Page, starting at 1"
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router       /product/product-list/{page} [get]
func (h *ProductHandler) Page(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		page = 1
	}
	result, err := h.productService.ListPage(c.Request.Context(), page)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, "", result.Items, result.Total, result.Page, result.PageSize)
}

// Search godoc
// @Summary      Search products
// @Tags         product
// @Produce      json
// @Param        keyword path string true "Keyword"
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router       /product/search/{keyword} [get]
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", products)
}

// Related godoc
// @Summary      Related products
// @Tags         product
// @Produce      json
// @Param        pid path string true "Product ID" format(uuid)
// @Param        cid path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /product/related-product/{pid}/{cid} [get]
func (h *ProductHandler) Related(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		h.HandleDomainError(c, catalogapp.ErrProductNotFound)
		return
	}
	categoryID, err := uuid.Parse(c.Param("cid"))
	if err != nil {
		h.HandleDomainError(c, catalogapp.ErrCategoryNotFound)
		return
	}
	products, err := h.productService.Related(c.Request.Context(), productID, categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", products)
}

// ByCategory godoc
// @Summary      Products of a category
// @Tags         product
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} APIResponse[catalogapp.CategoryProducts]
// @Failure      404 {object} ErrorResponse
// @Router       /product/product-category/{slug} [get]
func (h *ProductHandler) ByCategory(c *gin.Context) {
	result, err := h.productService.ByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", result)
}

// bindProductForm reads the multipart form and the optional photo part. The
// photo is read one byte past the limit so oversize uploads are detected
// without buffering them whole.
func (h *ProductHandler) bindProductForm(c *gin.Context) (catalogapp.ProductRequest, bool) {
	var req catalogapp.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return req, false
	}

	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return req, true
	}
	if err != nil {
		h.BadRequest(c, "Invalid photo upload")
		return req, false
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Invalid photo upload")
		return req, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, catalog.MaxPhotoSize+1))
	if err != nil {
		h.BadRequest(c, "Invalid photo upload")
		return req, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	req.Photo = &catalogapp.PhotoUpload{Data: data, ContentType: contentType}
	return req, true
}
