package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/savoraddis/cafe-backend/models"
)

// GatewayClient talks to the hosted-redirect payment gateway through the
// server API. Only the contract is consumed here; the gateway's own logic is
// an external collaborator.
type GatewayClient interface {
	InitiatePayment(ctx context.Context, req *PaymentRequest) (*PaymentInitResponse, error)
	VerifyTransaction(ctx context.Context, txRef string) (string, error)
}

type PaymentCustomization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PaymentRequest struct {
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	FirstName     string               `json:"first_name"`
	ParentName    *string              `json:"parent_name,omitempty"`
	TxRef         string               `json:"tx_ref"`
	CallbackURL   string               `json:"callback_url"`
	ReturnURL     string               `json:"returnUrl"`
	Customization PaymentCustomization `json:"customization"`
	PhoneNumber   string               `json:"phoneNumber"`
	CafeName      string               `json:"cafeName"`
	ItemOrdered   []models.OrderedItem `json:"itemOrdered"`
	OrderDate     *time.Time           `json:"orderDate,omitempty"`
	Grade         string               `json:"grade,omitempty"`
}

type PaymentInitResponse struct {
	PaymentURL string `json:"payment_url"`
}

type verifyResponse struct {
	Status string `json:"status"`
}

type HTTPGatewayClient struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewHTTPGatewayClient(baseURL, secret string) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// InitiatePayment requests a redirect URL for the given tx_ref. It never
// retries; a failed initiation surfaces to the customer who may retry with a
// fresh tx_ref.
func (g *HTTPGatewayClient) InitiatePayment(ctx context.Context, payReq *PaymentRequest) (*PaymentInitResponse, error) {
	body, err := json.Marshal(payReq)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/payment/pay", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.secret != "" {
		req.Header.Set("Authorization", "Bearer "+g.secret)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var initResp PaymentInitResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGatewayResponse, err)
	}
	if initResp.PaymentURL == "" {
		return nil, ErrInvalidGatewayResponse
	}
	return &initResp, nil
}

// VerifyTransaction asks the gateway for the authoritative status of a
// tx_ref. Reconciliation never trusts the redirect query string alone.
func (g *HTTPGatewayClient) VerifyTransaction(ctx context.Context, txRef string) (string, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", g.baseURL, txRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if g.secret != "" {
		req.Header.Set("Authorization", "Bearer "+g.secret)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gateway returned %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidGatewayResponse, err)
	}
	if vr.Status == "" {
		return "", ErrInvalidGatewayResponse
	}
	return vr.Status, nil
}
