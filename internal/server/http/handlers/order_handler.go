package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/server/http/dto"
	"github.com/vdeep/craftmart/internal/usecase"
)

// maxEvidenceSize bounds the payment screenshot upload.
const maxEvidenceSize = 10 << 20

// OrderHandler processes checkout and order reads for buyers.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders. The request is multipart: product ids,
// customer name, payment reference, and an optional payment screenshot.
func (h *OrderHandler) Checkout(c *gin.Context) {
	productIDs := parseProductIDs(c.PostFormArray("product_ids"))
	customerName := c.PostForm("customer_name")
	paymentRef := c.PostForm("payment_ref")

	input := usecase.CheckoutInput{
		ProductIDs:   productIDs,
		CustomerName: customerName,
		PaymentRef:   paymentRef,
	}

	if header, err := c.FormFile("screenshot"); err == nil {
		if header.Size > maxEvidenceSize {
			c.Status(http.StatusBadRequest)
			return
		}
		file, err := header.Open()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		input.Evidence = &usecase.FileUpload{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Data:     data,
		}
	}

	result, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation),
			errors.Is(err, domainErrors.ErrNothingPurchasable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewCheckoutResponse(result))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page := pageFromQuery(c)
	orders, total, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), page)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderPageResponse(orders, total, page.Normalize(9)))
}

// Download handles POST /api/orders/download.
func (h *OrderHandler) Download(c *gin.Context) {
	var req dto.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.DownloadCheck(c.Request.Context(), CurrentUserID(c), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAccessExpired):
			c.JSON(http.StatusForbidden, gin.H{"error": "download window expired, please purchase again"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.DownloadResponse{
		Status:       string(result.Status),
		DownloadLink: result.DownloadLink,
	})
}

func parseProductIDs(values []string) []int64 {
	var ids []int64
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			ids = append(ids, id)
		}
	}
	return ids
}
