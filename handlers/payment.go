package handlers

import (
	"net/http"

	"github.com/mohabnada13/nory/middleware"
	"github.com/mohabnada13/nory/paymob"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	gateway paymob.Client
	logger  *zap.Logger
}

func NewPaymentHandler(gateway paymob.Client, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		gateway: gateway,
		logger:  logger,
	}
}

type createPaymentRequest struct {
	Amount  float64 `json:"amount"`
	OrderID string  `json:"orderId"`
	Method  string  `json:"method"`
}

type createPaymentResponse struct {
	Success     bool    `json:"success"`
	IsMock      bool    `json:"isMock"`
	PaymentKey  string  `json:"paymentKey"`
	CheckoutURL *string `json:"checkoutUrl"`
}

// CreatePayment runs the payment setup sequence and hands the checkout
// artifact back to the client. The currency is forced to EGP downstream;
// any client-supplied currency is ignored.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "CreatePayment")
	defer span.End()

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate inputs before any remote call.
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number."})
		return
	}
	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID is required."})
		return
	}
	if req.Method != paymob.MethodCard && req.Method != paymob.MethodWallet {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Payment method must be either "card" or "wallet".`})
		return
	}

	span.SetAttributes(
		attribute.Float64("payment.amount", req.Amount),
		attribute.String("payment.method", req.Method),
		attribute.String("order.id", req.OrderID),
	)

	result, err := h.gateway.CreatePayment(ctx, paymob.PaymentRequest{
		Amount:  req.Amount,
		OrderID: req.OrderID,
		Method:  req.Method,
	})
	if err != nil {
		// The upstream failure reason stays in the logs; the caller only
		// sees a generic internal error.
		span.RecordError(err)
		h.logger.Error("Failed to create payment",
			zap.String("trace_id", middleware.GetTraceID(ctx)),
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment. Please try again later."})
		return
	}

	middleware.RecordPaymentCreated(req.Method, result.IsMock)
	span.SetAttributes(attribute.Bool("payment.mock", result.IsMock))

	var checkoutURL *string
	if result.CheckoutURL != "" {
		checkoutURL = &result.CheckoutURL
	}

	c.JSON(http.StatusOK, createPaymentResponse{
		Success:     true,
		IsMock:      result.IsMock,
		PaymentKey:  result.PaymentKey,
		CheckoutURL: checkoutURL,
	})
}

type verifyCallbackRequest struct {
	HMACPayload string `json:"hmacPayload"`
	OrderID     string `json:"orderId"`
}

// VerifyCallback checks a transaction callback payload for authenticity.
func (h *PaymentHandler) VerifyCallback(c *gin.Context) {
	_, span := otel.Tracer("nory").Start(c.Request.Context(), "VerifyCallback")
	defer span.End()

	var req verifyCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.HMACPayload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "HMAC payload is required."})
		return
	}

	result := h.gateway.VerifyCallback(req.HMACPayload, req.OrderID)

	span.SetAttributes(
		attribute.Bool("callback.verified", result.Verified),
		attribute.Bool("callback.mock", result.IsMock),
	)

	c.JSON(http.StatusOK, gin.H{
		"verified":      result.Verified,
		"isMock":        result.IsMock,
		"transactionId": result.TransactionID,
		"orderId":       result.OrderID,
	})
}
