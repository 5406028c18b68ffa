package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/mohabnada13/nory/kafka"
	"github.com/mohabnada13/nory/middleware"
	"github.com/mohabnada13/nory/models"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type OrderHandler struct {
	db       *sql.DB
	producer kafka.Publisher
	topic    string
	logger   *zap.Logger
}

func NewOrderHandler(db *sql.DB, producer kafka.Publisher, topic string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		db:       db,
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "CreateOrder")
	defer span.End()

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User must be authenticated."})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int("user_id", userID),
		attribute.Float64("order.total", req.Total),
	)

	var order models.Order
	err := h.db.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, status, total) VALUES ($1, $2, $3) RETURNING id, user_id, status, total, created_at, updated_at",
		userID, models.OrderStatusProcessing, req.Total,
	).Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("order.id", order.ID))

	event := models.OrderEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		FCMToken:  h.fcmToken(ctx, order.UserID),
		EventType: "order_created",
	}
	if err := kafka.PublishOrderEvent(ctx, h.producer, h.topic, event, h.logger); err != nil {
		// The order exists either way; the missed notification is logged.
		h.logger.Error("Failed to publish order_created event", zap.Error(err))
	}

	h.logger.Info("Order created", zap.Int("order_id", order.ID), zap.Int("user_id", userID))
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "GetOrder")
	defer span.End()

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	span.SetAttributes(attribute.Int("order.id", orderID))

	var order models.Order
	err = h.db.QueryRowContext(ctx,
		"SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE id = $1",
		orderID,
	).Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to get order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// AdvanceOrder moves an order one step along the fulfillment chain and
// notifies the customer. Any authenticated caller may advance any order;
// this demo-grade permissiveness is deliberate and a non-owner update is
// only logged. Concurrent advances of the same order are serialized by the
// status guard on the UPDATE, not by this handler.
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "AdvanceOrder")
	defer span.End()

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User must be authenticated."})
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	span.SetAttributes(attribute.Int("order.id", orderID))

	var order models.Order
	err = h.db.QueryRowContext(ctx,
		"SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE id = $1",
		orderID,
	).Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to get order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if order.UserID != userID {
		h.logger.Warn("Non-owner updating order status (demo mode)",
			zap.Int("order_id", orderID),
			zap.Int("owner_id", order.UserID),
			zap.Int("caller_id", userID),
		)
	}

	transition, err := models.NextStatus(order.Status)
	switch {
	case errors.Is(err, models.ErrOrderDelivered):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "Order is already delivered and cannot progress further."})
		return
	case errors.Is(err, models.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status."})
		return
	case err != nil:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(
		attribute.String("order.status.previous", string(order.Status)),
		attribute.String("order.status.new", string(transition.Next)),
	)

	// Guard on the previous status so two concurrent advances cannot both
	// win; the loser observes zero affected rows.
	result, err := h.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND status = $3",
		transition.Next, orderID, order.Status,
	)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to update order status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status."})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "Order status changed concurrently. Please retry."})
		return
	}

	event := models.OrderEvent{
		OrderID:   orderID,
		UserID:    order.UserID,
		Status:    transition.Next,
		Total:     order.Total,
		Message:   transition.Message,
		FCMToken:  h.fcmToken(ctx, order.UserID),
		EventType: "order_status_changed",
	}
	if err := kafka.PublishOrderEvent(ctx, h.producer, h.topic, event, h.logger); err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to publish order_status_changed event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status."})
		return
	}

	h.logger.Info("Order status advanced",
		zap.Int("order_id", orderID),
		zap.String("previous_status", string(order.Status)),
		zap.String("new_status", string(transition.Next)),
	)

	c.JSON(http.StatusOK, models.AdvanceOrderResponse{
		Success:        true,
		OrderID:        orderID,
		PreviousStatus: order.Status,
		NewStatus:      transition.Next,
		Message:        transition.Message,
	})
}

// fcmToken looks up the owner's registered device token; an empty string
// means no delivery channel is registered and the push is skipped.
func (h *OrderHandler) fcmToken(ctx context.Context, userID int) string {
	var token string
	err := h.db.QueryRowContext(ctx, "SELECT fcm_token FROM users WHERE id = $1", userID).Scan(&token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.logger.Error("Failed to look up FCM token", zap.Int("user_id", userID), zap.Error(err))
		}
		return ""
	}
	return token
}
