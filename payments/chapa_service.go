package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	statusSuccess = "success"
	statusPending = "pending"
)

type Config struct {
	SecretKey string
	BaseURL   string
	Currency  string
	Timeout   time.Duration
}

type ChapaClient struct {
	cfg  Config
	http *http.Client
}

func NewChapaClient(cfg Config) *ChapaClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &ChapaClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

func (c *ChapaClient) Configured() bool {
	return c.cfg.SecretKey != "" && c.cfg.BaseURL != ""
}

type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InitializeRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	TxRef         string          `json:"tx_ref"`
	CallbackURL   string          `json:"callback_url"`
	ReturnURL     string          `json:"return_url"`
	Customization Customization   `json:"customization"`
}

// InitializeResponse is either InitializeSuccess or InitializeFailure.
type InitializeResponse interface {
	isInitializeResponse()
}

type InitializeSuccess struct {
	CheckoutURL string
}

type InitializeFailure struct {
	Reason string
}

func (InitializeSuccess) isInitializeResponse() {}
func (InitializeFailure) isInitializeResponse() {}

type chapaEnvelope struct {
	Message json.RawMessage `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// Initialize starts a hosted checkout. Gateway-side rejections come back as
// InitializeFailure; transport and decoding problems as errors.
func (c *ChapaClient) Initialize(ctx context.Context, in InitializeRequest) (InitializeResponse, error) {
	if !c.Configured() {
		return nil, apperrors.NewConfigurationError("missing CHAPA_SECRET_KEY or CHAPA_BASE_URL")
	}
	if in.Currency == "" {
		in.Currency = c.cfg.Currency
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal payment payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create payment request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	env, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if env.Status != statusSuccess {
		return InitializeFailure{Reason: messageText(env.Message)}, nil
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.CheckoutURL == "" {
		return nil, apperrors.NewExternalError("payment gateway returned no checkout url", err)
	}

	log.Info().Str("tx_ref", in.TxRef).Msg("payment initialized")
	return InitializeSuccess{CheckoutURL: data.CheckoutURL}, nil
}

type VerifyResult struct {
	// Succeeded is true only when both the call and the transaction succeeded.
	Succeeded     bool
	GatewayStatus string
	Payload       json.RawMessage
}

// InProgress reports whether the checkout is still open on the gateway side.
func (r *VerifyResult) InProgress() bool {
	return r.GatewayStatus == statusPending
}

func (c *ChapaClient) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	if !c.Configured() {
		return nil, apperrors.NewConfigurationError("missing CHAPA_SECRET_KEY or CHAPA_BASE_URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create verify request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	env, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data struct {
		Status string `json:"status"`
	}
	// data is null when the gateway does not know the transaction.
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, apperrors.NewExternalError("malformed verify response", err)
		}
	}

	return &VerifyResult{
		Succeeded:     env.Status == statusSuccess && data.Status == statusSuccess,
		GatewayStatus: data.Status,
		Payload:       raw,
	}, nil
}

// do sends req and decodes the gateway envelope. Chapa answers errors with a
// JSON envelope and a 4xx status, so the status code alone is not a failure.
func (c *ChapaClient) do(req *http.Request) (*chapaEnvelope, json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("failed to read payment gateway response", err)
	}

	var env chapaEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("chapa returned non-JSON response")
		return nil, nil, apperrors.NewExternalError(fmt.Sprintf("malformed payment gateway response (HTTP %d)", resp.StatusCode), err)
	}
	return &env, raw, nil
}

// messageText flattens Chapa's message, which is a string or a field map.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "payment gateway rejected the request"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// CheckoutTitle is the short title Chapa shows on the hosted page.
func CheckoutTitle(listingTitle string) string {
	r := []rune(listingTitle)
	if len(r) > 5 {
		r = r[:5]
	}
	return "payment- " + string(r)
}
