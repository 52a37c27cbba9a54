// Package engine talks to the remote augmentation service. The service is
// opaque to this repository: only its HTTP contract is known here.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// apiKeyHeader is the header the augmentation service authenticates with.
const apiKeyHeader = "X-API-Key"

// Result carries everything a caller needs to relay an engine response.
type Result struct {
	Status             int
	ContentType        string
	ContentDisposition string
	Body               []byte
}

// Client posts processing jobs to the augmentation service.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewFromEnv builds a client from ENGINE_URL and ENGINE_API_KEY. Processing
// jobs run long, so the request timeout is generous.
func NewFromEnv() *Client {
	return &Client{
		BaseURL:    os.Getenv("ENGINE_URL"),
		APIKey:     os.Getenv("ENGINE_API_KEY"),
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Process forwards a multipart body to the engine and returns its response
// as-is. A non-200 engine status is not an error at this layer; the caller
// relays it to its own client.
func (c *Client) Process(ctx context.Context, contentType string, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("augmentation engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading engine response: %w", err)
	}

	return &Result{
		Status:             resp.StatusCode,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Body:               respBody,
	}, nil
}
