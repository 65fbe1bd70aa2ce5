package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/models"
)

// DepositMetadata ties a payment deposit back to the transfer it funds.
type DepositMetadata struct {
	ReceiverEmail string
	QuoteID       string
}

// PaymentProcessor creates and refunds external payment deposits.
type PaymentProcessor interface {
	CreateDeposit(ctx context.Context, amount decimal.Decimal, currency string, meta DepositMetadata) (*models.PaymentDeposit, error)
	Refund(ctx context.Context, depositID string) (string, error)
}

// NewPaymentProcessor returns the Stripe-backed processor, or nil when no
// API key is configured; the settlement engine treats a nil processor as
// "deposits disabled".
func NewPaymentProcessor(cfg *config.Config) PaymentProcessor {
	if cfg.Payments.APIKey == "" {
		return nil
	}
	return &stripeProcessor{
		baseURL: strings.TrimSuffix(cfg.Payments.BaseURL, "/"),
		apiKey:  cfg.Payments.APIKey,
		client:  newHTTPClient(cfg.Payments.Timeout),
	}
}

type stripeProcessor struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

func (p *stripeProcessor) CreateDeposit(ctx context.Context, amount decimal.Decimal, currency string, meta DepositMetadata) (*models.PaymentDeposit, error) {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0)
	if cents.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("deposit amount must be greater than zero")
	}

	form := url.Values{}
	form.Set("amount", cents.String())
	form.Set("currency", strings.ToLower(currency))
	form.Set("payment_method_types[]", "card")
	form.Set("payment_method", "pm_card_visa")
	form.Set("confirm", "true")
	form.Set("description", fmt.Sprintf("Warp transfer to %s", meta.ReceiverEmail))
	form.Set("metadata[receiver_email]", meta.ReceiverEmail)
	form.Set("metadata[quote_id]", meta.QuoteID)
	form.Set("metadata[source]", "warp_transfer")

	data := new(paymentIntentResponse)
	if err := p.post(ctx, "/v1/payment_intents", form, data); err != nil {
		return nil, err
	}

	return &models.PaymentDeposit{
		ID:            data.ID,
		Status:        data.Status,
		ClientSecret:  data.ClientSecret,
		Amount:        amount,
		Currency:      strings.ToLower(currency),
		QuoteID:       meta.QuoteID,
		ReceiverEmail: meta.ReceiverEmail,
	}, nil
}

func (p *stripeProcessor) Refund(ctx context.Context, depositID string) (string, error) {
	form := url.Values{}
	form.Set("payment_intent", depositID)

	data := new(paymentIntentResponse)
	if err := p.post(ctx, "/v1/refunds", form, data); err != nil {
		return "", err
	}
	return data.Status, nil
}

func (p *stripeProcessor) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", "Bearer "+p.apiKey)
	req.Header.Set("content-type", "application/x-www-form-urlencoded")

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("payment processor returned status %d: %s", res.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
