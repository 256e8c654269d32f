package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/alx_travel/configs"
	"github.com/rs/zerolog/log"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type BrevoMailer struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Endpoint    string
	client      *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	TextContent string              `json:"textContent"`
}

func NewBrevoMailer(apiKey, senderEmail, senderName string) *BrevoMailer {
	return &BrevoMailer{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		Endpoint:    brevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *BrevoMailer) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" || !strings.Contains(msg.ToEmail, "@") {
		return fmt.Errorf("invalid recipient email: %q", msg.ToEmail)
	}

	recipientName := msg.ToName
	if recipientName == "" {
		recipientName = msg.ToEmail[:strings.Index(msg.ToEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": msg.ToEmail, "name": recipientName}},
		Subject:     msg.Subject,
		TextContent: msg.Body,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	log.Info().Str("to", msg.ToEmail).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email (console backend)")
	return nil
}

// NewMailer returns a Brevo mailer when the account is fully configured and
// the console backend otherwise.
func NewMailer(cfg config.Email) Mailer {
	if !cfg.Configured() {
		log.Warn().Msg("Brevo is not configured, emails are written to the log")
		return LogMailer{}
	}
	return NewBrevoMailer(cfg.BrevoAPIKey, cfg.SenderEmail, cfg.SenderName)
}
