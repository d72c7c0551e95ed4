package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/server/http/dto"
)

// CartHandler manages the authenticated user's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler creates CartHandler instance.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/auth/cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyInCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "product already in cart"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// List handles GET /api/auth/cart.
func (h *CartHandler) List(c *gin.Context) {
	page := pageFromQuery(c)
	entries, total, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c), page)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	page = page.Normalize(10)
	resp := dto.CartPageResponse{
		Items:       make([]dto.CartItemResponse, 0, len(entries)),
		Total:       total,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
	}
	for _, entry := range entries {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			Product: dto.NewProductResponse(entry.Product),
			AddedAt: entry.AddedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Remove handles DELETE /api/auth/cart/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveFromCart(c.Request.Context(), CurrentUserID(c), id); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
