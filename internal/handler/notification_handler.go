package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/mapper"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/serverutils"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/service"
	internalWS "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/websocket"
)

// NotificationHandler serves a merchant's decision-notice inbox over REST
// and the live push channel over websocket.
type NotificationHandler struct {
	service *service.NotificationService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT with the same secret the REST middleware uses
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Extract MerchantID from Claim
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	merchantID, ok := claims["merchant_id"].(string)
	if !ok || merchantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing merchant_id"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"merchant_id": merchantID})
			internalWS.ServeWs(h.hub, c, merchantID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"merchant_id": merchantID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetNotifications returns a page of the merchant's inbox.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	merchantID, ok := c.Locals("merchant_id").(string)
	if !ok || merchantID == "" {
		return fiber.ErrUnauthorized
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	notifications, total, err := h.service.GetNotifications(c.UserContext(), merchantID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":  mapper.ToNotificationListResponses(notifications),
		"total": total,
		"page":  offset/limit + 1,
		"limit": limit,
	})
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	merchantID, ok := c.Locals("merchant_id").(string)
	if !ok || merchantID == "" {
		return fiber.ErrUnauthorized
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), merchantID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"count": count})
}

// MarkAsRead marks a specific notification as read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// MarkAllAsRead clears the merchant's unread badge.
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	merchantID, ok := c.Locals("merchant_id").(string)
	if !ok || merchantID == "" {
		return fiber.ErrUnauthorized
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), merchantID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Use(serverutils.MerchantJwtMiddleware)
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Patch("/read-all", h.MarkAllAsRead)

	// WebSocket (token validated in the handshake, not the middleware)
	router.Get("/ws", h.ServeWs)
}
