package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *ChapaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChapaClient(Config{SecretKey: "CHASECK_TEST", BaseURL: srv.URL + "/v1/", Currency: "ETB"})
}

func TestInitialize_Success(t *testing.T) {
	var got map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer CHASECK_TEST", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/checkout/payment/abc"}}`))
	})

	resp, err := client.Initialize(context.Background(), InitializeRequest{
		Amount:        decimal.RequireFromString("300.00"),
		Email:         "guest@example.com",
		TxRef:         "T1",
		ReturnURL:     "http://localhost:8000/api/payments/verify/T1/",
		Customization: Customization{Title: CheckoutTitle("Sunny loft"), Description: "Staying from 2024-01-01 to 2024-01-04"},
	})
	require.NoError(t, err)

	success, ok := resp.(InitializeSuccess)
	require.True(t, ok)
	assert.Equal(t, "https://checkout.chapa.co/checkout/payment/abc", success.CheckoutURL)
	assert.Equal(t, "T1", got["tx_ref"])
	assert.Equal(t, "ETB", got["currency"])
	assert.Equal(t, "300", got["amount"])
	assert.Equal(t, "payment- Sunny", got["customization"].(map[string]any)["title"])
}

func TestInitialize_GatewayFailure(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":{"email":["The email must be a valid email address."]},"status":"failed","data":null}`))
	})

	resp, err := client.Initialize(context.Background(), InitializeRequest{TxRef: "T2"})
	require.NoError(t, err)

	failure, ok := resp.(InitializeFailure)
	require.True(t, ok)
	assert.Contains(t, failure.Reason, "valid email")
}

func TestInitialize_NotConfigured(t *testing.T) {
	client := NewChapaClient(Config{})

	_, err := client.Initialize(context.Background(), InitializeRequest{TxRef: "T3"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConfiguration))

	_, err = client.Verify(context.Background(), "T3")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConfiguration))
}

func TestInitialize_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewChapaClient(Config{SecretKey: "k", BaseURL: srv.URL})

	_, err := client.Initialize(context.Background(), InitializeRequest{TxRef: "T4"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))
}

func TestInitialize_MalformedBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.Initialize(context.Background(), InitializeRequest{TxRef: "T5"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		succeeded  bool
		inProgress bool
	}{
		{"nested success", `{"message":"Payment details","status":"success","data":{"status":"success","tx_ref":"T1"}}`, true, false},
		{"nested failure", `{"message":"Payment details","status":"success","data":{"status":"failed","tx_ref":"T1"}}`, false, false},
		{"checkout open", `{"message":"Payment details","status":"success","data":{"status":"pending","tx_ref":"T1"}}`, false, true},
		{"outer failure", `{"message":"Invalid transaction or Transaction not found","status":"failed","data":null}`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/transaction/verify/T1", r.URL.Path)
				w.Write([]byte(tt.body))
			})

			res, err := client.Verify(context.Background(), "T1")
			require.NoError(t, err)
			assert.Equal(t, tt.succeeded, res.Succeeded)
			assert.Equal(t, tt.inProgress, res.InProgress())
			assert.JSONEq(t, tt.body, string(res.Payload))
		})
	}
}

func TestCheckoutTitle(t *testing.T) {
	assert.Equal(t, "payment- Sunny", CheckoutTitle("Sunny loft near Bole"))
	assert.Equal(t, "payment- Loft", CheckoutTitle("Loft"))
	assert.Equal(t, "payment- ሰላም ቤ", CheckoutTitle("ሰላም ቤት"))
}
