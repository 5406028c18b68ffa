package paymob

import (
	"context"
	"testing"

	"github.com/mohabnada13/nory/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func mockConfig() config.PaymobConfig {
	return config.PaymobConfig{
		APIKey:              config.PlaceholderAPIKey,
		HMACSecret:          config.PlaceholderHMAC,
		MerchantID:          config.PlaceholderMerchantID,
		IntegrationIDCard:   config.PlaceholderIntegrationIDCard,
		IntegrationIDWallet: config.PlaceholderIntegrationIDWallet,
	}
}

func TestNewClient_SelectsStrategyOnce(t *testing.T) {
	logger := zaptest.NewLogger(t)

	mock := NewClient(mockConfig(), logger)
	assert.IsType(t, &mockClient{}, mock)

	real := NewClient(config.PaymobConfig{APIKey: "real_api_key"}, logger)
	assert.IsType(t, &gatewayClient{}, real)
}

func TestMockClient_CreatePayment_Deterministic(t *testing.T) {
	client := NewClient(mockConfig(), zaptest.NewLogger(t))

	for i := 0; i < 3; i++ {
		result, err := client.CreatePayment(context.Background(), PaymentRequest{
			Amount:  120.0,
			OrderID: "order-42",
			Method:  MethodCard,
		})
		require.NoError(t, err)
		assert.True(t, result.IsMock)
		assert.Equal(t, "mock_payment_key", result.PaymentKey)
		assert.Equal(t,
			"https://accept.paymob.com/api/acceptance/iframes/123?payment_token=mock_payment_key",
			result.CheckoutURL,
		)
	}
}

func TestMockClient_CreatePayment_WalletHasNoCheckoutURL(t *testing.T) {
	client := NewClient(mockConfig(), zaptest.NewLogger(t))

	result, err := client.CreatePayment(context.Background(), PaymentRequest{
		Amount:  35.0,
		OrderID: "order-7",
		Method:  MethodWallet,
	})
	require.NoError(t, err)
	assert.True(t, result.IsMock)
	assert.Equal(t, "mock_payment_key", result.PaymentKey)
	assert.Empty(t, result.CheckoutURL)
}

func TestPaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  PaymentRequest
		want error
	}{
		{"zero amount", PaymentRequest{Amount: 0, OrderID: "x", Method: MethodCard}, ErrInvalidAmount},
		{"negative amount", PaymentRequest{Amount: -5, OrderID: "x", Method: MethodCard}, ErrInvalidAmount},
		{"missing order id", PaymentRequest{Amount: 10, OrderID: "", Method: MethodCard}, ErrMissingOrderID},
		{"unsupported method", PaymentRequest{Amount: 10, OrderID: "x", Method: "bitcoin"}, ErrInvalidMethod},
		{"valid card", PaymentRequest{Amount: 10, OrderID: "x", Method: MethodCard}, nil},
		{"valid wallet", PaymentRequest{Amount: 10, OrderID: "x", Method: MethodWallet}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestMockClient_RejectsInvalidRequests(t *testing.T) {
	client := NewClient(mockConfig(), zaptest.NewLogger(t))

	_, err := client.CreatePayment(context.Background(), PaymentRequest{Amount: 0, OrderID: "x", Method: MethodCard})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCents(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{10, 1000},
		{19.99, 1999},
		{49.994, 4999},
		{49.995, 5000}, // half up at the cent boundary
		{49.996, 5000},
		{0.005, 1},
		{0.004, 0},
		{120.0, 12000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Cents(tt.amount), "Cents(%v)", tt.amount)
	}
}

func TestVerifyCallback_MockAlwaysVerifies(t *testing.T) {
	client := NewClient(mockConfig(), zaptest.NewLogger(t))

	result := client.VerifyCallback("anything at all", "")
	assert.True(t, result.Verified)
	assert.True(t, result.IsMock)
	assert.Equal(t, "mock_transaction_id", result.TransactionID)
	assert.Equal(t, "mock_order_id", result.OrderID)

	withOrder := client.VerifyCallback("anything", "order-9")
	assert.Equal(t, "order-9", withOrder.OrderID)
}

func TestVerifyCallback_RealRequiresSecretSubstring(t *testing.T) {
	client := NewClient(config.PaymobConfig{
		APIKey:     "real_api_key",
		HMACSecret: "s3cr3t-hmac",
	}, zaptest.NewLogger(t))

	ok := client.VerifyCallback("prefix s3cr3t-hmac suffix", "order-1")
	assert.True(t, ok.Verified)
	assert.False(t, ok.IsMock)
	assert.Equal(t, "transaction_id_from_payload", ok.TransactionID)
	assert.Equal(t, "order-1", ok.OrderID)

	bad := client.VerifyCallback("no secret here", "")
	assert.False(t, bad.Verified)
	assert.Equal(t, "order_id_from_payload", bad.OrderID)
}
