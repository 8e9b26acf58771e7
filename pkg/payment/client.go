// Package payment provides lightweight clients for the payment providers the
// platform accepts. Raw HTTP calls, no SDKs.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when a provider's credentials are missing.
var ErrNotConfigured = errors.New("payment: provider not configured")

// CreateParams describes the charge to initiate.
type CreateParams struct {
	Amount      int64  // minor units
	Currency    string // "RUB", "USD", ...
	Description string
	ReturnURL   string
	DonationID  string // carried as provider metadata
}

// Created is the provider-side result of initiating a payment.
type Created struct {
	ProviderID string
	PaymentURL string
}

// Client initiates a payment with one provider.
type Client interface {
	CreatePayment(ctx context.Context, params CreateParams) (Created, error)
}

// minorToDecimal renders minor units as "123.45" the way both providers want.
func minorToDecimal(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// ---------------------------------------------------------------------------
// YooKassa
// ---------------------------------------------------------------------------

// YooKassaClient talks to the YooKassa payments API.
type YooKassaClient struct {
	ShopID     string
	SecretKey  string
	httpClient *http.Client
}

// NewYooKassaClient creates a YooKassaClient.
func NewYooKassaClient(shopID, secretKey string) *YooKassaClient {
	return &YooKassaClient{
		ShopID:     shopID,
		SecretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *YooKassaClient) CreatePayment(ctx context.Context, params CreateParams) (Created, error) {
	if c.ShopID == "" || c.SecretKey == "" {
		return Created{}, ErrNotConfigured
	}

	body := map[string]any{
		"amount": map[string]string{
			"value":    minorToDecimal(params.Amount),
			"currency": params.Currency,
		},
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": params.ReturnURL,
		},
		"capture":     true,
		"description": params.Description,
		"metadata":    map[string]string{"donation_id": params.DonationID},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Created{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.yookassa.ru/v3/payments", bytes.NewReader(jsonBody))
	if err != nil {
		return Created{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.Header.Set("Authorization", "Basic "+
		base64.StdEncoding.EncodeToString([]byte(c.ShopID+":"+c.SecretKey)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Created{}, fmt.Errorf("yookassa request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return Created{}, fmt.Errorf("yookassa: status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		ID           string `json:"id"`
		Confirmation struct {
			ConfirmationURL string `json:"confirmation_url"`
		} `json:"confirmation"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Created{}, fmt.Errorf("yookassa decode: %w", err)
	}
	return Created{ProviderID: out.ID, PaymentURL: out.Confirmation.ConfirmationURL}, nil
}

// ---------------------------------------------------------------------------
// CloudPayments
// ---------------------------------------------------------------------------

// CloudPaymentsClient talks to the CloudPayments orders API.
type CloudPaymentsClient struct {
	PublicID   string
	APISecret  string
	httpClient *http.Client
}

// NewCloudPaymentsClient creates a CloudPaymentsClient.
func NewCloudPaymentsClient(publicID, apiSecret string) *CloudPaymentsClient {
	return &CloudPaymentsClient{
		PublicID:   publicID,
		APISecret:  apiSecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *CloudPaymentsClient) CreatePayment(ctx context.Context, params CreateParams) (Created, error) {
	if c.PublicID == "" || c.APISecret == "" {
		return Created{}, ErrNotConfigured
	}

	body := map[string]any{
		"Amount":      minorToDecimal(params.Amount),
		"Currency":    params.Currency,
		"Description": params.Description,
		"InvoiceId":   params.DonationID,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Created{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.cloudpayments.ru/orders/create", bytes.NewReader(jsonBody))
	if err != nil {
		return Created{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.PublicID, c.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Created{}, fmt.Errorf("cloudpayments request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return Created{}, fmt.Errorf("cloudpayments: status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Success bool `json:"Success"`
		Model   struct {
			ID  string `json:"Id"`
			URL string `json:"Url"`
		} `json:"Model"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Created{}, fmt.Errorf("cloudpayments decode: %w", err)
	}
	if !out.Success {
		return Created{}, fmt.Errorf("cloudpayments: %s", out.Message)
	}
	return Created{ProviderID: out.Model.ID, PaymentURL: out.Model.URL}, nil
}
