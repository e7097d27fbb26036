package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client sends transactional email through the provider's REST API.
type Client struct {
	apiKey  string
	baseURL string
	isLocal bool
	client  *http.Client
}

type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type message struct {
	Sender      Address      `json:"sender"`
	To          []Address    `json:"to"`
	ReplyTo     *Address     `json:"replyTo,omitempty"`
	Subject     string       `json:"subject"`
	TextContent string       `json:"textContent"`
	HTMLContent string       `json:"htmlContent"`
	Attachment  []Attachment `json:"attachment,omitempty"`
}

// NewClient configures the provider. When env is not prod, emails are
// logged and dropped instead of sent.
func NewClient(apiKey, baseURL, env string) (Client, error) {
	if apiKey == "" {
		return Client{}, fmt.Errorf("email API key cannot be empty")
	}
	return Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		isLocal: env != "prod",
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c Client) SendHTMLEmail(from, to Address, subject, text, html string) error {
	return c.send(message{
		Sender:      from,
		To:          []Address{to},
		Subject:     subject,
		TextContent: text,
		HTMLContent: html,
	})
}

func (c Client) SendEmailWithAttachments(from, to Address, subject, text, html string, attachments []Attachment) error {
	return c.send(message{
		Sender:      from,
		To:          []Address{to},
		Subject:     subject,
		TextContent: text,
		HTMLContent: html,
		Attachment:  attachments,
	})
}

func (c Client) send(msg message) error {
	if c.isLocal {
		fmt.Printf("email not sent in non-prod env: to %s subject %q\n", msg.To[0].Email, msg.Subject)
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "unable to encode email payload")
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "unable to build email request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "unable to send email request")
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("email provider returned status %d", res.StatusCode)
	}
	return nil
}
