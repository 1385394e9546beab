// Package cms is a typed client for the headless CMS that stores the
// recruit blog: media upload and post creation for the publish tooling,
// list and get for front-end rendering.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	apiKeyHeader    = "X-MICROCMS-API-KEY"
	defaultEndpoint = "blogs"
)

// Config carries the service coordinates. It is passed in explicitly so
// tests can run against a fake service with fake credentials.
type Config struct {
	ServiceDomain string
	APIKey        string
}

// APIError is a non-2xx response from the CMS, carrying the textual
// error body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to the CMS content and management APIs.
type Client struct {
	contentBase string
	mediaBase   string
	endpoint    string
	apiKey      string
	httpClient  *http.Client
	log         *zap.Logger
}

// Option adjusts a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithContentBaseURL overrides the content API base URL. Used by tests.
func WithContentBaseURL(base string) Option {
	return func(c *Client) { c.contentBase = base }
}

// WithMediaBaseURL overrides the management API base URL. Used by tests.
func WithMediaBaseURL(base string) Option {
	return func(c *Client) { c.mediaBase = base }
}

// WithEndpoint changes the content endpoint name (default "blogs").
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// New creates a Client for the given service.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ServiceDomain == "" {
		return nil, errors.New("cms: service domain is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("cms: API key is required")
	}

	c := &Client{
		contentBase: fmt.Sprintf("https://%s.microcms.io/api/v1", cfg.ServiceDomain),
		mediaBase:   fmt.Sprintf("https://%s.microcms-management.io/api/v1", cfg.ServiceDomain),
		endpoint:    defaultEndpoint,
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{},
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UploadMedia sends a binary payload to the media endpoint and returns
// its public URL.
func (c *Client) UploadMedia(ctx context.Context, data []byte, contentType, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mediaBase+"/media", &body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.Debug("uploading media",
		zap.String("filename", filename),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)

	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("uploading media: %w", err)
	}
	return out.URL, nil
}

// CreatePost creates a new post and returns its ID.
func (c *Client) CreatePost(ctx context.Context, rec PublishRecord) (string, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.contentBase+"/"+c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("creating post", zap.String("title", rec.Title))

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("creating post: %w", err)
	}
	return out.ID, nil
}

// ListPosts returns a page of published posts.
func (c *Client) ListPosts(ctx context.Context, q ListQuery) (*PostList, error) {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Category != "" {
		params.Set("filters", fmt.Sprintf("category[contains]%s", q.Category))
	}

	endpoint := c.contentBase + "/" + c.endpoint
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	var out PostList
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return &out, nil
}

// GetPost returns a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, errors.New("cms: post ID is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentBase+"/"+c.endpoint+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("building get request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	var out Post
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("getting post %s: %w", id, err)
	}
	return &out, nil
}

// do executes the request and decodes a 2xx JSON body into out. Non-2xx
// responses become *APIError with the response body preserved.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
