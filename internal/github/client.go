// Package github is a small client for the GitHub Actions secrets REST API.
//
// Only the three endpoints this tool needs are implemented: fetching the
// repository public key, creating or updating a secret, and listing secret
// names. Any non-2xx answer is returned as a *errors.RemoteError.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultEndpoint  = "https://api.github.com"
	DefaultUserAgent = "env-to-github-secrets"

	acceptHeader = "application/vnd.github.v3+json"
)

// Config configures a Client.
type Config struct {
	// Endpoint is the API root. Defaults to DefaultEndpoint.
	Endpoint string

	// Token is the personal access token sent with every request.
	Token string

	// UserAgent defaults to DefaultUserAgent.
	UserAgent string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the cleanhttp client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the GitHub REST API.
type Client struct {
	conf   Config
	client *http.Client
}

// NewClient returns a Client for conf.
func NewClient(conf Config) *Client {
	if conf.Endpoint == "" {
		conf.Endpoint = DefaultEndpoint
	}
	conf.Endpoint = strings.TrimRight(conf.Endpoint, "/")

	if conf.UserAgent == "" {
		conf.UserAgent = DefaultUserAgent
	}

	client := conf.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultClient()
		client.Timeout = conf.Timeout
	}

	return &Client{conf: conf, client: client}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.conf
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		b := new(bytes.Buffer)
		if err := json.NewEncoder(b).Encode(body); err != nil {
			return nil, err
		}
		buf = b
	}

	req, err := http.NewRequestWithContext(ctx, method, c.conf.Endpoint+path, buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "token "+c.conf.Token)
	req.Header.Set("User-Agent", c.conf.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// doRequest sends req and decodes a 2xx JSON body into v when v is non-nil.
// It returns the response status code alongside any error.
func (c *Client) doRequest(req *http.Request, operation string, v any) (int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return resp.StatusCode, &kerrors.RemoteError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp.StatusCode, fmt.Errorf("%s: decoding response: %w", operation, err)
		}
	}

	return resp.StatusCode, nil
}
