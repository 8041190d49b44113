package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrNotConfigured is returned when the pinning provider credentials are
// missing or still set to placeholder values.
var ErrNotConfigured = errors.New("pinning provider credentials are not configured")

// ProviderError wraps a non-2xx response from the pinning provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("pinning provider returned %d: %s", e.Status, e.Message)
}

type Config struct {
	APIKey     string
	APISecret  string
	BaseURL    string // e.g. https://api.pinata.cloud
	GatewayURL string // e.g. https://gateway.pinata.cloud
}

// Client talks to a Pinata-compatible pinning provider.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.pinata.cloud"
	}
	if config.GatewayURL == "" {
		config.GatewayURL = "https://gateway.pinata.cloud"
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) checkConfigured() error {
	key := strings.TrimSpace(c.config.APIKey)
	secret := strings.TrimSpace(c.config.APISecret)
	if key == "" || secret == "" {
		return ErrNotConfigured
	}
	if strings.HasPrefix(key, "your-") || strings.HasPrefix(secret, "your-") {
		return ErrNotConfigured
	}
	return nil
}

func (c *Client) authenticate(req *http.Request) {
	req.Header.Set("pinata_api_key", c.config.APIKey)
	req.Header.Set("pinata_secret_api_key", c.config.APISecret)
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinJSON stores the payload with the provider and returns its content id.
func (c *Client) PinJSON(ctx context.Context, name string, payload any) (string, error) {
	if err := c.checkConfigured(); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]any{
		"pinataMetadata": map[string]string{"name": name},
		"pinataContent":  payload,
	})
	if err != nil {
		return "", fmt.Errorf("marshal pin payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authenticate(req)

	return c.doPin(req)
}

// PinFile uploads a single binary attachment via multipart form.
func (c *Client) PinFile(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := c.checkConfigured(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/pinning/pinFileToIPFS", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authenticate(req)

	return c.doPin(req)
}

func (c *Client) doPin(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pin request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	var pinned pinResponse
	if err := json.Unmarshal(raw, &pinned); err != nil {
		return "", fmt.Errorf("parse pin response: %w", err)
	}
	if pinned.IpfsHash == "" {
		return "", errors.New("pin response missing content id")
	}
	return pinned.IpfsHash, nil
}

// FetchJSON retrieves a previously pinned JSON payload through the gateway.
func (c *Client) FetchJSON(ctx context.Context, contentID string, out any) error {
	raw, _, err := c.Fetch(ctx, contentID)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Fetch returns the raw bytes and content type for a content id. Gateway
// reads need no credentials, so this works even when uploads are disabled.
func (c *Client) Fetch(ctx context.Context, contentID string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.GatewayURL+"/ipfs/"+contentID, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("gateway fetch failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", &ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

// TestConnectivity performs the provider's lightweight authentication probe.
func (c *Client) TestConnectivity(ctx context.Context) error {
	if err := c.checkConfigured(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/data/testAuthentication", nil)
	if err != nil {
		return err
	}
	c.authenticate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return &ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	return nil
}
