package estatesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call when no base URL is set.
var ErrNotConfigured = errors.New("estates API: ESTATES_API_BASE_URL is not set")

// APIError is a non-2xx answer from the estates API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is what the catalog needs from the remote estates API. Payloads are
// returned raw; callers normalize them.
type Client interface {
	Configured() bool
	GetAllEstates(ctx context.Context) (json.RawMessage, error)
	GetEstateByID(ctx context.Context, id string) (json.RawMessage, error)
	CreateEstate(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
	UpdateEstate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	DeleteEstate(ctx context.Context, id string) error
	FilterEstates(ctx context.Context, query url.Values) (json.RawMessage, error)
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// HTTPClient is a Client backed by the REST API at BaseURL. A nil Client
// uses a shared client with a 10s timeout.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return defaultHTTPClient
}

func (c *HTTPClient) Configured() bool {
	return c != nil && strings.TrimSpace(c.BaseURL) != ""
}

func (c *HTTPClient) GetAllEstates(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/estates", nil, httpStatusMessage)
}

func (c *HTTPClient) GetEstateByID(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/estates/"+url.PathEscape(id), nil, httpStatusMessage)
}

func (c *HTTPClient) CreateEstate(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/estates", body, httpStatusMessage)
}

func (c *HTTPClient) UpdateEstate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/estates/"+url.PathEscape(id), body, httpStatusMessage)
}

// DeleteEstate expects no content on success.
func (c *HTTPClient) DeleteEstate(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/estates/"+url.PathEscape(id), nil, func(status int) string {
		return fmt.Sprintf("Error al eliminar propiedad: %d", status)
	})
	return err
}

// FilterEstates lets the API filter server-side. An empty query hits /estates with no "?".
func (c *HTTPClient) FilterEstates(ctx context.Context, query url.Values) (json.RawMessage, error) {
	path := "/estates"
	if qs := query.Encode(); qs != "" {
		path += "?" + qs
	}
	return c.do(ctx, http.MethodGet, path, nil, httpStatusMessage)
}

func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, fallbackMsg func(int) string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("estates API request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("estates API read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fallbackMsg(resp.StatusCode)
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if method != http.MethodDelete && !json.Valid(respBody) {
		return nil, fmt.Errorf("estates API %s %s: response is not JSON", method, path)
	}
	return json.RawMessage(respBody), nil
}
