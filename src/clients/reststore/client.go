package reststore

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

	"fundnav/src/config"
	"fundnav/src/repositories"
)

// Client talks to a PostgREST-style remote data store. Every value crossing
// this boundary is JSON with calendar dates as plain YYYY-MM-DD strings;
// native time values are never serialized.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.Databases.REST.BaseURL == "" {
		return nil, errors.New("rest store baseUrl is required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.Databases.REST.BaseURL, "/"),
		apiKey:  cfg.Databases.REST.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) get(ctx context.Context, table string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, table, params, nil, "", out)
}

// insert posts rows with return=representation so generated ids come back.
func (c *Client) insert(ctx context.Context, table string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, table, nil, body, "return=representation", out)
}

// upsert posts rows with merge-duplicates semantics on the conflict columns,
// so a repeated key collapses to last write wins.
func (c *Client) upsert(ctx context.Context, table string, conflictCols string, body interface{}, out interface{}) error {
	params := url.Values{}
	params.Set("on_conflict", conflictCols)
	return c.do(ctx, http.MethodPost, table, params, body, "resolution=merge-duplicates,return=representation", out)
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, body interface{}, prefer string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("rest store %s %s: %w", method, table, repositories.ErrDuplicate)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("rest store %s %s failed: %d - %s", method, table, resp.StatusCode, string(responseBody))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(responseBody, out)
}
