package paymob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mohabnada13/nory/config"

	"go.uber.org/zap"
)

// gatewayClient talks to the real Paymob acceptance API. Every payment setup
// performs its own fresh three-call sequence; auth tokens, remote orders and
// payment keys are never cached across requests, and no call is retried.
type gatewayClient struct {
	cfg     config.PaymobConfig
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type authResponse struct {
	Token string `json:"token"`
}

// remoteOrder is Paymob's representation of the local order.
type remoteOrder struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

type paymentKeyResponse struct {
	Token string `json:"token"`
}

// billingData is a fixed block: the storefront does not collect real billing
// details yet, but Paymob requires every field to be present.
var billingData = map[string]string{
	"apartment":       "NA",
	"email":           "customer@example.com",
	"floor":           "NA",
	"first_name":      "Nory",
	"street":          "NA",
	"building":        "NA",
	"phone_number":    "+201000000000",
	"shipping_method": "NA",
	"postal_code":     "NA",
	"city":            "Cairo",
	"country":         "Egypt",
	"last_name":       "Shop",
	"state":           "NA",
}

func (c *gatewayClient) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authToken, err := c.authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("paymob auth: %w", err)
	}

	order, err := c.createOrder(ctx, authToken, req)
	if err != nil {
		return nil, fmt.Errorf("paymob create order: %w", err)
	}

	paymentKey, err := c.mintPaymentKey(ctx, authToken, order.ID, req)
	if err != nil {
		return nil, fmt.Errorf("paymob payment key: %w", err)
	}

	c.logger.Info("Payment key created",
		zap.String("merchant_order_id", req.OrderID),
		zap.Int64("paymob_order_id", order.ID),
		zap.String("method", req.Method),
	)

	return &PaymentResult{
		PaymentKey:  paymentKey,
		CheckoutURL: checkoutURL(req.Method, paymentKey),
		IsMock:      false,
	}, nil
}

// VerifyCallback checks that the callback payload carries the configured HMAC
// secret as a substring. This is a deliberately weak placeholder kept for
// compatibility with the existing demo clients, not a real signature check;
// a production rewrite must compute a keyed hash over the payload and compare
// in constant time.
func (c *gatewayClient) VerifyCallback(payload, orderID string) CallbackResult {
	if orderID == "" {
		orderID = "order_id_from_payload"
	}
	return CallbackResult{
		Verified:      strings.Contains(payload, c.cfg.HMACSecret),
		IsMock:        false,
		TransactionID: "transaction_id_from_payload",
		OrderID:       orderID,
	}
}

// authenticate exchanges the API key for a short-lived auth token used only
// within this payment setup.
func (c *gatewayClient) authenticate(ctx context.Context) (string, error) {
	var resp authResponse
	err := c.postJSON(ctx, authPath, map[string]any{"api_key": c.cfg.APIKey}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *gatewayClient) createOrder(ctx context.Context, authToken string, req PaymentRequest) (*remoteOrder, error) {
	body := map[string]any{
		"auth_token":        authToken,
		"delivery_needed":   false,
		"amount_cents":      Cents(req.Amount),
		"currency":          currency,
		"merchant_order_id": req.OrderID,
		"items":             []any{},
	}

	var order remoteOrder
	if err := c.postJSON(ctx, orderPath, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *gatewayClient) mintPaymentKey(ctx context.Context, authToken string, paymobOrderID int64, req PaymentRequest) (string, error) {
	integrationID := c.cfg.IntegrationIDCard
	if req.Method == MethodWallet {
		integrationID = c.cfg.IntegrationIDWallet
	}

	body := map[string]any{
		"auth_token":           authToken,
		"amount_cents":         Cents(req.Amount),
		"expiration":           3600,
		"order_id":             paymobOrderID,
		"billing_data":         billingData,
		"currency":             currency,
		"integration_id":       integrationID,
		"lock_order_when_paid": false,
	}

	var resp paymentKeyResponse
	if err := c.postJSON(ctx, paymentKeyPath, body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *gatewayClient) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Paymob request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
