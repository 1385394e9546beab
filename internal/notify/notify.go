// Package notify formats form submissions as Slack Block Kit messages
// and forwards them to an incoming-webhook URL.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Field is one label/value pair from a submitted form.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormSubmission is the payload the site form posts: a type
// discriminator plus the filled-in fields.
type FormSubmission struct {
	Type   string  `json:"type"`
	Fields []Field `json:"fields"`
}

// Message is a Slack Block Kit webhook payload.
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block is a single Block Kit block.
type Block struct {
	Type string     `json:"type"`
	Text *BlockText `json:"text,omitempty"`
}

// BlockText is the text object inside a block.
type BlockText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// BuildMessage renders a submission as a header block followed by one
// section block per field.
func BuildMessage(sub FormSubmission) Message {
	blocks := []Block{{
		Type: "header",
		Text: &BlockText{Type: "plain_text", Text: "フォーム送信: " + sub.Type, Emoji: true},
	}}
	for _, f := range sub.Fields {
		value := f.Value
		if strings.TrimSpace(value) == "" {
			value = "(未入力)"
		}
		blocks = append(blocks, Block{
			Type: "section",
			Text: &BlockText{Type: "mrkdwn", Text: fmt.Sprintf("*%s*\n%s", f.Label, value)},
		})
	}
	return Message{Blocks: blocks}
}

// Forwarder posts submissions to a webhook. No retries: the caller
// reports failure to the submitter.
type Forwarder struct {
	webhookURL string
	httpClient *http.Client
	log        *zap.Logger
}

// ForwarderOption adjusts a Forwarder.
type ForwarderOption func(*Forwarder)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ForwarderOption {
	return func(f *Forwarder) { f.httpClient = hc }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) ForwarderOption {
	return func(f *Forwarder) { f.log = log }
}

// NewForwarder creates a Forwarder for the given webhook URL.
func NewForwarder(webhookURL string, opts ...ForwarderOption) (*Forwarder, error) {
	if webhookURL == "" {
		return nil, errors.New("notify: webhook URL is required")
	}
	f := &Forwarder{
		webhookURL: webhookURL,
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Forward sends one submission to the webhook.
func (f *Forwarder) Forward(ctx context.Context, sub FormSubmission) error {
	payload, err := json.Marshal(BuildMessage(sub))
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	f.log.Info("forwarded form submission",
		zap.String("type", sub.Type),
		zap.Int("fields", len(sub.Fields)),
	)
	return nil
}
