// Package apiclient is the HTTP layer under every domain service. It builds
// authenticated requests against the Wildlife Tracker API, parses JSON and
// text responses uniformly, and surfaces failures as tagged error types.
// There is no retry or backoff; callers decide whether to try again.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

// TokenSource yields the current bearer token. The second return is false
// when no session exists, in which case no Authorization header is sent.
type TokenSource func() (string, bool)

// Config configures the API client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string
	// HTTPClient executes requests. When nil a default client without a
	// timeout is used; ordinary calls carry no deadline by contract.
	HTTPClient *http.Client
	// Token supplies the bearer token, usually backed by the session store.
	Token TokenSource
	// RequestsPerSecond throttles outgoing calls when positive.
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// Client talks to the Wildlife Tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// New validates the configuration and returns a client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("apiclient: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: BaseURL scheme must be http or https")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      cfg.Token,
		limiter:    limiter,
		log:        cfg.Logger,
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// RequestOptions shape a single call made through Do.
type RequestOptions struct {
	// Body is JSON-encoded when non-nil.
	Body any
	// Query is appended to the endpoint.
	Query url.Values
	// Headers override the defaults key by key. Setting Content-Type or
	// Authorization here suppresses the corresponding default.
	Headers http.Header
}

// Do executes a request and returns the raw body plus the declared content
// type. Non-2xx statuses come back as *HTTPError with the server `detail`
// when the error body parses as JSON; transport failures as *NetworkError.
func (c *Client) Do(ctx context.Context, method, endpoint string, opts RequestOptions) ([]byte, string, error) {
	reqURL := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		reqURL += sep + opts.Query.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, "", fmt.Errorf("apiclient: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("apiclient: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req, opts.Headers)

	return c.execute(req, method, endpoint, true)
}

// applyHeaders attaches the bearer token and request ID, then lets caller
// overrides win.
func (c *Client) applyHeaders(req *http.Request, overrides http.Header) {
	if c.token != nil {
		if token, ok := c.token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	for key, values := range overrides {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}

// execute runs the request and normalizes the response. parseDetail selects
// whether error bodies are mined for a `detail` message; the export path
// turns it off.
func (c *Client) execute(req *http.Request, method, endpoint string, parseDetail bool) ([]byte, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, "", &NetworkError{Op: method + " " + endpoint, Err: err}
		}
	}

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &NetworkError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", &NetworkError{Op: "read response for " + endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
		if parseDetail {
			if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
				httpErr.Detail = detail.String()
			}
		}
		c.log.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("api error response")
		return nil, "", httpErr
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// decode unmarshals a 2xx body into out according to the declared content
// type. A nil out discards the body. Non-JSON bodies only fit a *string.
func decode(body []byte, contentType string, out any) error {
	if out == nil {
		return nil
	}
	if strings.Contains(contentType, "application/json") {
		if err := json.Unmarshal(body, out); err != nil {
			return &ParseError{Err: err}
		}
		return nil
	}
	if text, ok := out.(*string); ok {
		*text = string(body)
		return nil
	}
	return &ParseError{Err: fmt.Errorf("expected JSON, got %q", contentType)}
}

// GetJSON fetches endpoint and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	body, ct, err := c.Do(ctx, http.MethodGet, endpoint, RequestOptions{Query: query})
	if err != nil {
		return err
	}
	return decode(body, ct, out)
}

// PostJSON sends in as a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, endpoint string, in, out any) error {
	body, ct, err := c.Do(ctx, http.MethodPost, endpoint, RequestOptions{Body: in})
	if err != nil {
		return err
	}
	return decode(body, ct, out)
}

// PutJSON sends in as a JSON body and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, endpoint string, in, out any) error {
	body, ct, err := c.Do(ctx, http.MethodPut, endpoint, RequestOptions{Body: in})
	if err != nil {
		return err
	}
	return decode(body, ct, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	_, _, err := c.Do(ctx, http.MethodDelete, endpoint, RequestOptions{})
	return err
}

// Download fetches a binary payload. Error bodies are not mined for detail;
// export endpoints only promise a status code.
func (c *Client) Download(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req, nil)

	body, _, err := c.execute(req, http.MethodGet, endpoint, false)
	if err != nil {
		return nil, err
	}
	return body, nil
}
