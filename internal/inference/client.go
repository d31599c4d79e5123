// Package inference provides a chat completion client for an Ollama-style
// inference server. Every call is a single attempt: retry and fallback
// decisions belong to the caller.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/listing-lab/internal/config"
)

const chatPath = "/api/chat"

// Options tunes a single generation call. Zero-value fields fall back to the
// client's configured defaults.
type Options struct {
	// Temperature overrides the configured sampling temperature.
	Temperature *float64

	// Structured requests a JSON-formatted response from the model.
	Structured bool

	// Timeout overrides the configured generation timeout.
	Timeout time.Duration
}

// Generation is the result of a completed generation call.
type Generation struct {
	Content  string
	Model    string
	Duration time.Duration
}

// Client issues chat completion requests against a single configured model.
type Client struct {
	baseURL     string
	model       string
	timeout     time.Duration
	temperature float64
	logger      *slog.Logger
	http        *http.Client
}

// New creates a client from the inference configuration.
func New(cfg *config.InferenceConfig, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inference: base_url required")
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL:     baseURL,
		model:       cfg.Model,
		timeout:     cfg.TimeoutDuration(),
		temperature: cfg.Temperature,
		logger:      logger.With("system", "inference"),
		http:        &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom client.
func NewWithHTTPClient(cfg *config.InferenceConfig, logger *slog.Logger, httpClient *http.Client) (*Client, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.http = httpClient
	}
	return c, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  chatOptions   `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Generate sends prompt to the model and returns its reply. The call is made
// exactly once: a timeout surfaces as ErrTimeout, any transport or protocol
// failure as ErrConnection, and a blank reply is an error rather than an
// empty success.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (*Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  chatOptions{Temperature: temperature},
	}
	if opts.Structured {
		reqBody.Format = "json"
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrConnection, err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+chatPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.logger.Warn("generation rejected", "status", resp.StatusCode, "model", c.model)
		return nil, fmt.Errorf("%w: status %d: %s", ErrConnection, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrConnection, err)
	}

	duration := time.Since(start)

	if strings.TrimSpace(reply.Message.Content) == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrConnection)
	}

	model := reply.Model
	if model == "" {
		model = c.model
	}

	c.logger.Debug("generation complete", "model", model, "duration", duration, "structured", opts.Structured)

	return &Generation{
		Content:  reply.Message.Content,
		Model:    model,
		Duration: duration,
	}, nil
}

// classify maps transport errors onto the package sentinels. Deadline and
// cancellation conditions are timeouts; everything else is a connection
// failure.
func (c *Client) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrConnection, err)
}
