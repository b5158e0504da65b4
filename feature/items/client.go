package items

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// lookupAttempts bounds the retry contract of the metadata lookup:
// three attempts total with a fixed delay between them.
const lookupAttempts = 3

// MetadataService resolves an item id to a display name.
// Failures after retry exhaustion are reported as errors; the resolver
// degrades them to sentinel values instead of aborting the batch.
type MetadataService interface {
	ItemName(ctx context.Context, itemID string) (string, error)
}

// Client queries the Blizzard game-data API for item names.
// It authenticates lazily via the OAuth client-credentials flow and keeps
// the bearer token for the lifetime of the client (one run).
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	token  string
}

// NewClient creates a metadata client from the configuration.
func NewClient(cfg Config, l *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: l,
	}
}

// ItemName fetches the display name for an item id.
// Transient failures (network errors, 5xx, 429) are retried with a fixed
// backoff; terminal responses (other 4xx) fail immediately.
func (c *Client) ItemName(ctx context.Context, itemID string) (string, error) {
	var name string

	operation := func() error {
		if c.token == "" {
			if err := c.authenticate(ctx); err != nil {
				return err
			}
		}

		reqURL := fmt.Sprintf("%s/item/%s?namespace=%s&locale=%s",
			strings.TrimSuffix(c.cfg.APIBase, "/"), itemID,
			url.QueryEscape(c.cfg.Namespace), url.QueryEscape(c.cfg.Locale))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to decode
		case resp.StatusCode == http.StatusUnauthorized:
			// Token expired mid-run: re-authenticate on the next attempt
			c.token = ""
			return fmt.Errorf("token rejected (401), re-authenticating")
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("transient status %d for item %s", resp.StatusCode, itemID)
		default:
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("unexpected status %d for item %s: %s",
				resp.StatusCode, itemID, string(body)))
		}

		var payload struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		if payload.Name == "" {
			return backoff.Permanent(fmt.Errorf("item %s has no name in response", itemID))
		}

		name = payload.Name
		return nil
	}

	delay := c.cfg.RetryDelaySeconds
	if delay <= 0 {
		delay = 2
	}
	b := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(time.Duration(delay)*time.Second),
		lookupAttempts-1,
	)

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("item lookup failed after retries: %w", err)
	}

	return name, nil
}

// authenticate performs the OAuth client-credentials exchange.
func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create token request: %w", err))
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("transient token status %d", resp.StatusCode)
		}
		return backoff.Permanent(fmt.Errorf("token request rejected with status %d", resp.StatusCode))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode token response: %w", err))
	}
	if payload.AccessToken == "" {
		return backoff.Permanent(fmt.Errorf("token response contains no access_token"))
	}

	c.token = payload.AccessToken
	c.logger.Debug("Authenticated against metadata service")
	return nil
}
