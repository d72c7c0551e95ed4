package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/server/http/dto"
	"github.com/vdeep/craftmart/internal/server/http/middleware"
)

// NotificationHandler serves push subscription setup.
type NotificationHandler struct {
	facade        SubscriptionFacade
	publicKey     string
	adminPassword string
}

// NewNotificationHandler creates NotificationHandler instance.
func NewNotificationHandler(facade SubscriptionFacade, publicKey, adminPassword string) *NotificationHandler {
	return &NotificationHandler{facade: facade, publicKey: publicKey, adminPassword: adminPassword}
}

// Config handles GET /api/notifications/config.
func (h *NotificationHandler) Config(c *gin.Context) {
	if h.publicKey == "" {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.PushConfigResponse{PublicKey: h.publicKey})
}

// Subscribe handles POST /api/notifications/subscribe. The route does its own
// authentication because admins subscribe with the shared password and no
// bearer token: either credential admits the caller, and only the password
// grants the admin role, so a regular user cannot route order alerts to their
// own browser.
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	supplied := c.GetHeader(middleware.AdminPasswordHeader)
	adminOK := supplied != "" && subtle.ConstantTimeCompare([]byte(supplied), []byte(h.adminPassword)) == 1

	var userID int64
	tokenOK := false
	if token := middleware.ExtractToken(c); token != "" {
		if id, err := h.facade.ParseToken(token); err == nil {
			userID = id
			tokenOK = true
		}
	}

	if !adminOK && !tokenOK {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Endpoint == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	role := model.RoleUser
	if req.Role == string(model.RoleAdmin) {
		if !adminOK {
			c.Status(http.StatusUnauthorized)
			return
		}
		role = model.RoleAdmin
	}

	sub := &model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
		UserID:   userID,
		Role:     role,
	}

	if err := h.facade.SaveSubscription(c.Request.Context(), sub); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusCreated)
}
