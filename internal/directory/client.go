package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/client-service/internal/config"
)

// ErrUnavailable reports a directory transport failure.
var ErrUnavailable = errors.New("directory service unavailable")

// Candidate is the directory's view of a person. Only name and email drive the
// registration reconciliation.
type Candidate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
}

// Client looks up people in the external directory.
type Client interface {
	// Lookup returns the first matching candidate, or nil when the directory
	// has no match for the given name/email pair.
	Lookup(ctx context.Context, name, email string) (*Candidate, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds a directory client over a shared, long-lived
// http.Client injected by the composition root.
func NewHTTPClient(cfg config.DirectoryConfig, client *http.Client, logger *zap.Logger) Client {
	return &httpClient{baseURL: cfg.BaseURL, client: client, logger: logger}
}

func (c *httpClient) Lookup(ctx context.Context, name, email string) (*Candidate, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("email", email)
	endpoint := c.baseURL + "/users?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("directory lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("directory lookup returned error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	// The directory may return several loose matches; the first one wins.
	return &candidates[0], nil
}
