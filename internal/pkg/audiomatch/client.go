// Package audiomatch is a client for the external audio-fingerprinting
// service used for copyright detection. Detection is best-effort: callers
// treat an unreachable detector as "no result", not as a failed upload.
package audiomatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// Result is the detector's verdict for a submitted audio file.
type Result struct {
	Matched bool    `json:"matched"`
	Title   string  `json:"title,omitempty"`
	Artist  string  `json:"artist,omitempty"`
	Album   string  `json:"album,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Detector is the interface post creation depends on.
type Detector interface {
	Detect(ctx context.Context, audioPath string) (*Result, error)
}

// Client submits audio files to the fingerprinting service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a detector client. Timeouts only exist at this HTTP-client
// level; there is no cancellation of an in-flight analysis on the remote side.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NoopDetector reports every file as unmatched. Used when no detection
// service is configured.
type NoopDetector struct{}

func (NoopDetector) Detect(context.Context, string) (*Result, error) {
	return &Result{Matched: false}, nil
}

// Detect uploads the file at audioPath and returns the match metadata.
func (c *Client) Detect(ctx context.Context, audioPath string) (*Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", f.Name())
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/identify", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("detection service returned %d: %s", resp.StatusCode, raw)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	return &result, nil
}
