// Package paymob integrates with the Paymob acceptance API. A payment setup
// is three sequential calls: authenticate, create a remote order, mint a
// payment key. When no real credentials are configured the package swaps in a
// deterministic mock so the rest of the system keeps working in demos and
// tests.
package paymob

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/mohabnada13/nory/config"

	"go.uber.org/zap"
)

const (
	MethodCard   = "card"
	MethodWallet = "wallet"
)

const (
	defaultBaseURL = "https://accept.paymob.com"
	authPath       = "/api/auth/tokens"
	orderPath      = "/api/ecommerce/orders"
	paymentKeyPath = "/api/acceptance/payment_keys"

	// Pre-provisioned card iframe. The payment key is appended as a query
	// parameter when building the checkout URL.
	iframeURL = defaultBaseURL + "/api/acceptance/iframes/123"

	currency = "EGP"
)

var (
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrMissingOrderID = errors.New("order ID is required")
	ErrInvalidMethod  = errors.New(`payment method must be either "card" or "wallet"`)
)

// PaymentRequest describes one payment setup. Amount is in EGP major units.
type PaymentRequest struct {
	Amount  float64
	OrderID string
	Method  string
}

// Validate rejects the request before any remote call is made.
func (r PaymentRequest) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.OrderID == "" {
		return ErrMissingOrderID
	}
	if r.Method != MethodCard && r.Method != MethodWallet {
		return ErrInvalidMethod
	}
	return nil
}

// PaymentResult is the checkout artifact handed back to the client app.
// CheckoutURL is empty for wallet payments: the mobile app completes the
// flow with the raw payment key.
type PaymentResult struct {
	PaymentKey  string
	CheckoutURL string
	IsMock      bool
}

// CallbackResult is the outcome of verifying a transaction callback payload.
type CallbackResult struct {
	Verified      bool
	IsMock        bool
	TransactionID string
	OrderID       string
}

// Client produces checkout artifacts and verifies callbacks. The mock/real
// decision is made once at construction, never per call.
type Client interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	VerifyCallback(payload, orderID string) CallbackResult
}

// NewClient selects the gateway strategy from the configured credentials.
func NewClient(cfg config.PaymobConfig, logger *zap.Logger) Client {
	if cfg.IsMock() {
		logger.Info("Paymob credentials not configured, using mock gateway")
		return &mockClient{}
	}
	return &gatewayClient{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Cents converts an EGP amount to integer piasters, rounding half away from
// zero at the cent boundary. Amounts are quoted to at most three decimal
// places, so the value is first snapped to the nearest tenth of a cent;
// otherwise binary float noise turns 49.995 into 4999 instead of 5000.
func Cents(amount float64) int64 {
	return int64(math.Round(math.Round(amount*1000) / 10))
}

func checkoutURL(method, paymentKey string) string {
	if method == MethodCard {
		return iframeURL + "?payment_token=" + paymentKey
	}
	return ""
}
