package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/savoraddis/cafe-backend/services"

	"github.com/stretchr/testify/assert"
)

func paymentRequest(txRef string) *services.PaymentRequest {
	return &services.PaymentRequest{
		Amount:      130,
		Currency:    "ETB",
		FirstName:   "Abel",
		TxRef:       txRef,
		CallbackURL: "http://localhost:8080/api/payment/verify?tx_ref=" + txRef,
		PhoneNumber: "0911000000",
		CafeName:    "cambridge",
	}
}

func TestInitiatePayment_Success(t *testing.T) {
	var gotAuth string
	var gotBody services.PaymentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/pay", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"payment_url": "https://gw/hosted/123"})
	}))
	defer srv.Close()

	client := services.NewHTTPGatewayClient(srv.URL, "sk-test")
	resp, err := client.InitiatePayment(context.Background(), paymentRequest("CAF-1-abc"))

	assert.NoError(t, err)
	assert.Equal(t, "https://gw/hosted/123", resp.PaymentURL)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, 130.0, gotBody.Amount)
	assert.Equal(t, "CAF-1-abc", gotBody.TxRef)
}

func TestInitiatePayment_MissingPaymentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	client := services.NewHTTPGatewayClient(srv.URL, "")
	_, err := client.InitiatePayment(context.Background(), paymentRequest("CAF-1-abc"))
	assert.ErrorIs(t, err, services.ErrInvalidGatewayResponse)
}

func TestInitiatePayment_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := services.NewHTTPGatewayClient(srv.URL, "")
	_, err := client.InitiatePayment(context.Background(), paymentRequest("CAF-1-abc"))
	assert.ErrorIs(t, err, services.ErrGatewayUnavailable)
}

func TestInitiatePayment_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := services.NewHTTPGatewayClient(srv.URL, "")
	_, err := client.InitiatePayment(context.Background(), paymentRequest("CAF-1-abc"))
	assert.ErrorIs(t, err, services.ErrGatewayUnavailable)
}

func TestVerifyTransaction_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/CAF-1-abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	client := services.NewHTTPGatewayClient(srv.URL, "")
	status, err := client.VerifyTransaction(context.Background(), "CAF-1-abc")
	assert.NoError(t, err)
	assert.Equal(t, "success", status)
}

func TestVerifyTransaction_EmptyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := services.NewHTTPGatewayClient(srv.URL, "")
	_, err := client.VerifyTransaction(context.Background(), "CAF-1-abc")
	assert.ErrorIs(t, err, services.ErrInvalidGatewayResponse)
}
