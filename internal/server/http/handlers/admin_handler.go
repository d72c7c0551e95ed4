package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/server/http/dto"
	"github.com/vdeep/craftmart/internal/usecase"
)

// maxProductFileSize bounds admin product uploads.
const maxProductFileSize = 100 << 20

// AdminHandler serves the password-gated admin surface.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	page := pageFromQuery(c)
	orders, total, err := h.facade.AllOrders(c.Request.Context(), page)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderPageResponse(orders, total, page.Normalize(20)))
}

// Approve handles POST /api/admin/orders/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	h.decide(c, h.facade.ApproveOrder)
}

// Reject handles POST /api/admin/orders/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	h.decide(c, h.facade.RejectOrder)
}

func (h *AdminHandler) decide(c *gin.Context, apply func(ctx context.Context, orderID int64) (*model.Order, error)) {
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := apply(c.Request.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderImmutable):
			c.JSON(http.StatusConflict, gin.H{"error": "rejected orders cannot be approved"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// CreateProduct handles POST /api/admin/products. The request is multipart
// with the product fields plus thumbnail and source files.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	draft := usecase.ProductDraft{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Price:         price,
		Version:       c.PostForm("version"),
		FileType:      c.PostForm("file_type"),
		FontsIncluded: c.PostForm("fonts_included") == "true",
	}
	if raw := c.PostForm("sale_price"); raw != "" {
		if sale, err := strconv.ParseFloat(raw, 64); err == nil {
			draft.SalePrice = &sale
		}
	}

	thumbnail, ok := readFormFile(c, "thumbnail")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	source, ok := readFormFile(c, "source")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), draft, thumbnail, source)
	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProductResponse(*product))
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

func readFormFile(c *gin.Context, field string) (usecase.FileUpload, bool) {
	header, err := c.FormFile(field)
	if err != nil || header.Size > maxProductFileSize {
		return usecase.FileUpload{}, false
	}
	file, err := header.Open()
	if err != nil {
		return usecase.FileUpload{}, false
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.FileUpload{}, false
	}
	return usecase.FileUpload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}, true
}
