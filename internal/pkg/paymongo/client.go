// Package paymongo is a thin client for the PayMongo payment-links API.
// Only the two calls the platform needs are implemented: creating a link and
// looking one up by reference number.
package paymongo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.paymongo.com/v1"

// Link is the subset of the provider's link resource the platform reads.
type Link struct {
	ID              string
	ReferenceNumber string
	CheckoutURL     string
	Status          string // "unpaid", "paid", "expired"
	Amount          int
}

// Client calls the payment-link provider over HTTP with basic auth.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a provider client. The secret API key is sent as the basic-auth
// username with an empty password, per the provider's convention.
func New(apiKey string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a local server.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.apiKey+":"))
}

type linkAttributes struct {
	Amount          int    `json:"amount"`
	Description     string `json:"description"`
	ReferenceNumber string `json:"reference_number"`
	CheckoutURL     string `json:"checkout_url"`
	Status          string `json:"status"`
}

type linkResource struct {
	ID         string         `json:"id"`
	Attributes linkAttributes `json:"attributes"`
}

// CreateLink creates a payment link for the given amount (in cents).
func (c *Client) CreateLink(ctx context.Context, amountCents int, description string) (*Link, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"attributes": map[string]interface{}{
				"amount":      amountCents,
				"description": description,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/links", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, raw)
	}

	var wrapper struct {
		Data linkResource `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return toLink(wrapper.Data), nil
}

// GetLinkByReference looks up a payment link by its reference number.
// Returns nil when the provider has no link for the reference.
func (c *Client) GetLinkByReference(ctx context.Context, reference string) (*Link, error) {
	endpoint := fmt.Sprintf("%s/links?reference_number=%s", c.baseURL, url.QueryEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, raw)
	}

	var wrapper struct {
		Data []linkResource `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if len(wrapper.Data) == 0 {
		return nil, nil
	}
	return toLink(wrapper.Data[0]), nil
}

func toLink(r linkResource) *Link {
	return &Link{
		ID:              r.ID,
		ReferenceNumber: r.Attributes.ReferenceNumber,
		CheckoutURL:     r.Attributes.CheckoutURL,
		Status:          r.Attributes.Status,
		Amount:          r.Attributes.Amount,
	}
}
