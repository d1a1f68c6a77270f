// Package directory talks to the external UserManagement service over HTTP.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gdugdh24/matches-backend/internal/config"
	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/repository"
)

const dependencyName = "user directory"

// Client implements repository.UserDirectory against the UserManagement
// REST API. The caller's bearer token is forwarded on every request; this
// service holds no credentials of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.UserDirectoryConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ repository.UserDirectory = (*Client)(nil)

// ResolveByIDs returns the subset of ids known to UserManagement. Ids the
// directory does not know are absent from the result.
func (c *Client) ResolveByIDs(ctx context.Context, ids []int64, token string) ([]*domain.UserSummary, error) {
	body, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode user ids: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/user", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, token)
}

// ResolveByLocation returns every user registered at the location.
func (c *Client) ResolveByLocation(ctx context.Context, location, token string) ([]*domain.UserSummary, error) {
	endpoint := c.baseURL + "/user/" + url.PathEscape(location)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build location request: %w", err)
	}

	return c.do(req, token)
}

func (c *Client) do(req *http.Request, token string) ([]*domain.UserSummary, error) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewDependencyError(dependencyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewDependencyError(dependencyName,
			fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode))
	}

	users := []*domain.UserSummary{}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, domain.NewDependencyError(dependencyName, fmt.Errorf("decode response: %w", err))
	}
	return users, nil
}
