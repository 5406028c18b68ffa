package models

import "time"

type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type CreateOrderRequest struct {
	Total float64 `json:"total" binding:"required,gt=0"`
}

type AdvanceOrderResponse struct {
	Success        bool        `json:"success"`
	OrderID        int         `json:"orderId"`
	PreviousStatus OrderStatus `json:"previousStatus"`
	NewStatus      OrderStatus `json:"newStatus"`
	Message        string      `json:"message"`
}

type OrderEvent struct {
	OrderID   int         `json:"order_id"`
	UserID    int         `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Message   string      `json:"message,omitempty"`
	FCMToken  string      `json:"fcm_token,omitempty"`
	EventType string      `json:"event_type"` // order_created, order_status_changed
}
