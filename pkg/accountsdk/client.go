package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the accounts service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with a 10s timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and triggers the verification mail.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	var res Result
	if err := c.postJSON(ctx, "/register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Verify consumes a verification link address.
func (c *Client) Verify(ctx context.Context, link string) (*Result, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/verify/"+url.PathEscape(link), nil, nil)
	if err != nil {
		return nil, err
	}

	var res Result
	if err := decodeJSON(resp, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login returns a Result whose Message is the access token on success.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	var res Result
	if err := c.postJSON(ctx, "/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Name returns the subject the token was issued to.
func (c *Client) Name(ctx context.Context, token string) (*NameResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/name", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		return nil, err
	}

	var name NameResponse
	if err := decodeJSON(resp, &name, http.StatusOK); err != nil {
		return nil, err
	}
	return &name, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, http.StatusOK)
}

func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON reads the body once and either decodes it into target or turns
// it into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
