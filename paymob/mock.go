package paymob

import "context"

// Canned mock values. Byte-for-byte deterministic so tests can assert exact
// output.
const (
	mockPaymentKey    = "mock_payment_key"
	mockTransactionID = "mock_transaction_id"
	mockOrderID       = "mock_order_id"
)

// mockClient stands in for the gateway when no real credentials are
// configured. It performs no network I/O.
type mockClient struct{}

func (m *mockClient) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &PaymentResult{
		PaymentKey:  mockPaymentKey,
		CheckoutURL: checkoutURL(req.Method, mockPaymentKey),
		IsMock:      true,
	}, nil
}

func (m *mockClient) VerifyCallback(payload, orderID string) CallbackResult {
	if orderID == "" {
		orderID = mockOrderID
	}
	return CallbackResult{
		Verified:      true,
		IsMock:        true,
		TransactionID: mockTransactionID,
		OrderID:       orderID,
	}
}
