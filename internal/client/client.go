package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/askdoc-console/internal/domain"
	"go.uber.org/zap"
)

// Paths are the backend endpoints the console talks to
type Paths struct {
	Documents string
	Upload    string
	QA        string
	Health    string
}

// DefaultPaths matches the reference backend
func DefaultPaths() Paths {
	return Paths{
		Documents: "/documents",
		Upload:    "/upload-doc",
		QA:        "/qa",
		Health:    "/health",
	}
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Paths      Paths
	TopK       int
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *Metrics
}

// Client issues requests against the question-answering backend.
// It imposes no timeout and never retries; cancellation comes from the caller's context.
type Client struct {
	baseURL    string
	paths      Paths
	topK       int
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics
}

// New creates a backend client
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	paths := opts.Paths
	defaults := DefaultPaths()
	if paths.Documents == "" {
		paths.Documents = defaults.Documents
	}
	if paths.Upload == "" {
		paths.Upload = defaults.Upload
	}
	if paths.QA == "" {
		paths.QA = defaults.QA
	}
	if paths.Health == "" {
		paths.Health = defaults.Health
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		paths:      paths,
		topK:       opts.TopK,
		httpClient: httpClient,
		logger:     logger.Named("backend"),
		metrics:    opts.Metrics,
	}
}

// Do issues method against path, encodes body when present and decodes the JSON
// response into out. The HTTP status is not inspected: backends report failure
// through the decoded body. Any failure to complete the exchange or decode the
// body is returned as *domain.TransportError.
func (c *Client) Do(ctx context.Context, op, method, path string, body Body, out any) error {
	start := time.Now()
	err := c.do(ctx, method, path, body, out)
	if c.metrics != nil {
		c.metrics.observe(op, time.Since(start), err)
	}
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body Body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		r, ct, err := body.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("backend request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("undecodable backend response",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return fmt.Errorf("failed to decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	c.logger.Debug("backend response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
