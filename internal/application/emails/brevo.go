package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// ErrNotConfigured is returned when no Brevo API key is set.
var ErrNotConfigured = errors.New("email: SENDINBLUE_API_KEY is not set")

// BrevoSendRequest matches the Brevo API v3 transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender   `json:"sender"`
	To          []BrevoTo     `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
	ReplyTo     *BrevoReplyTo `json:"replyTo,omitempty"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type BrevoReplyTo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Message is one outgoing email.
type Message struct {
	To          string
	Subject     string
	ContentHTML string
	ReplyTo     *BrevoReplyTo
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

var defaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// BrevoClient sends emails via the Brevo (Sendinblue) API.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Endpoint string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@inmobiliaria.example"
}

func (c *BrevoClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return brevoAPI
}

// Send wraps the content in the site layout and posts it to Brevo.
func (c *BrevoClient) Send(ctx context.Context, m Message) error {
	if c.APIKey == "" {
		return ErrNotConfigured
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: siteName},
		To:          []BrevoTo{{Email: m.To}},
		Subject:     m.Subject,
		HTMLContent: EmailLayout(m.ContentHTML),
		ReplyTo:     m.ReplyTo,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	client := c.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}
