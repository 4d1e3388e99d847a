// Package http is a small fluent client for outbound API calls, used by
// the payment gateway integration. It handles JSON and form bodies,
// per-attempt timeouts, and retries with exponential backoff.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// DefaultClient is shared by all outbound requests so connections get
// pooled across calls. Tests can swap its Transport.
var DefaultClient = &gohttp.Client{
	Transport: &gohttp.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Request builds one outbound call. Configure it with the chainable
// setters, then call Send.
type Request struct {
	method    string
	url       string
	headers   map[string]string
	jsonBody  interface{}
	formBody  url.Values
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
	ctx       context.Context
}

func newRequest(method, target string) *Request {
	return &Request{
		method:    method,
		url:       target,
		headers:   map[string]string{"Accept": "application/json"},
		timeout:   30 * time.Second,
		attempts:  1,
		retryWait: 500 * time.Millisecond,
		ctx:       context.Background(),
	}
}

// Get starts a GET request.
func Get(target string) *Request { return newRequest(gohttp.MethodGet, target) }

// Post starts a POST request.
func Post(target string) *Request { return newRequest(gohttp.MethodPost, target) }

// Delete starts a DELETE request.
func Delete(target string) *Request { return newRequest(gohttp.MethodDelete, target) }

// Header sets one request header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Bearer sets the Authorization header with a bearer token.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Body sets a JSON request body; v is marshalled on Send.
func (r *Request) Body(v interface{}) *Request {
	r.jsonBody = v
	return r
}

// Form sets an application/x-www-form-urlencoded body. Stripe's API only
// accepts form encoding. Form wins over Body when both are set.
func (r *Request) Form(v url.Values) *Request {
	r.formBody = v
	return r
}

// Timeout sets the per-attempt timeout.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry sets the total number of attempts (1 means no retry) and the
// initial backoff, which doubles after each failure.
func (r *Request) Retry(attempts int, wait time.Duration) *Request {
	r.attempts = attempts
	r.retryWait = wait
	return r
}

// WithContext attaches ctx; cancelling it aborts in-flight attempts.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Send executes the request, retrying transport-level failures. Non-2xx
// responses are returned, not retried; inspect Response.OK.
func (r *Request) Send() (*Response, error) {
	var lastErr error
	backoff := r.retryWait

	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, err := r.attempt()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt < r.attempts {
			logger.Warn("http: request failed, retrying",
				"url", r.url, "attempt", attempt, "backoff", backoff, "error", err)
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("http: all %d attempts failed for %s %s: %w", r.attempts, r.method, r.url, lastErr)
}

func (r *Request) attempt() (*Response, error) {
	body, contentType, err := r.encodeBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

func (r *Request) encodeBody() (io.Reader, string, error) {
	switch {
	case r.formBody != nil:
		return strings.NewReader(r.formBody.Encode()), "application/x-www-form-urlencoded", nil
	case r.jsonBody == nil:
		return nil, "", nil
	default:
		b, err := json.Marshal(r.jsonBody)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Response holds the fully-read result of a request.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Raw)
}
