/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is a hand written client for the users API.
//
// Each operation issues exactly one request and returns the raw status and
// body, there are no retries, no client side validation and no caching.
// Transport failures are returned as errors, HTTP statuses never are.
//
// Every request carries a fresh W3C trace context so that a failure can be
// found in the provider's logs, the trace ID is logged on error and returned
// in the Response.
package client

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

const (
	// DefaultTimeout applies when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	traceState = "test-automation=ginkgo"
)

var ErrInvalidBaseURL = errors.New("invalid base URL")

//go:generate mockgen -source=client.go -destination=mock/interface.go -package=mock

// Interface is the set of users API operations.
type Interface interface {
	ListUsers(ctx context.Context, params *ListUsersParams) (*Response, error)
	GetUser(ctx context.Context, userID int64) (*Response, error)
	CreateUser(ctx context.Context, user openapi.UserCreate) (*Response, error)
	ReplaceUser(ctx context.Context, userID int64, user openapi.UserCreate) (*Response, error)
	UpdateUser(ctx context.Context, userID int64, patch openapi.UserPatch) (*Response, error)
	DeleteUser(ctx context.Context, userID int64) (*Response, error)
}

type options struct {
	authToken    string
	timeout      time.Duration
	logger       logr.Logger
	logRequests  bool
	logResponses bool
	transport    http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

func WithAuthToken(token string) Option {
	return func(o *options) {
		o.authToken = token
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRequestLogging logs the status and duration of every request.
func WithRequestLogging(enabled bool) Option {
	return func(o *options) {
		o.logRequests = enabled
	}
}

// WithResponseLogging logs every non-empty response body.
func WithResponseLogging(enabled bool) Option {
	return func(o *options) {
		o.logResponses = enabled
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// Client implements Interface over HTTP.  Reuse one per test run.
type Client struct {
	baseURL      string
	client       *resty.Client
	authToken    string
	logger       logr.Logger
	logRequests  bool
	logResponses bool
	endpoints    *Endpoints
	propagator   propagation.TextMapPropagator
}

// Ensure the interface is implemented.
var _ Interface = &Client{}

// New returns a client for the API rooted at baseURL, e.g.
// https://gorest.co.in/public/v2.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidBaseURL, baseURL)
	}

	o := &options{
		timeout: DefaultTimeout,
		logger:  logr.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(o.timeout).
		SetHeader("Accept", "application/json")

	restyClient.SetLogger(&restyLogger{logger: o.logger})

	if o.transport != nil {
		restyClient.SetTransport(o.transport)
	}

	return &Client{
		baseURL:      baseURL,
		client:       restyClient,
		authToken:    o.authToken,
		logger:       o.logger,
		logRequests:  o.logRequests,
		logResponses: o.logResponses,
		endpoints:    NewEndpoints(),
		propagator:   propagation.TraceContext{},
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken replaces the bearer token, an empty token sends none.
// Not safe to call concurrently with requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// restyLogger forwards resty's own diagnostics to logr.
type restyLogger struct {
	logger logr.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(nil, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.V(1).Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// logError logs a transport error with trace context.
func (c *Client) logError(method, path string, duration time.Duration, traceID string, err error, msg string) {
	c.logger.Error(err, msg, "method", method, "path", path, "duration", duration, "traceID", traceID)
	c.logTraceContext(traceID)
}

// logTraceContext logs the trace context information.
func (c *Client) logTraceContext(traceID string) {
	c.logger.Info("use the trace ID to search provider logs for this request", "traceID", traceID)
}

// newTraceContext creates a new sampled W3C trace for a single request.
func newTraceContext(ctx context.Context) (context.Context, trace.SpanContext) {
	var (
		traceID trace.TraceID
		spanID  trace.SpanID
	)

	_, _ = rand.Read(traceID[:])
	_, _ = rand.Read(spanID[:])

	state, _ := trace.ParseTraceState(traceState)

	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		TraceState: state,
	})

	return trace.ContextWithRemoteSpanContext(ctx, spanContext), spanContext
}

func (c *Client) doRequest(ctx context.Context, method, path string, query map[string]string, body any) (*Response, error) {
	traceCtx, spanContext := newTraceContext(ctx)
	traceID := spanContext.TraceID().String()

	header := http.Header{}
	c.propagator.Inject(traceCtx, propagation.HeaderCarrier(header))

	req := c.client.R().
		SetContext(ctx).
		SetQueryParams(query)

	for key := range header {
		req.SetHeader(key, header.Get(key))
	}

	if c.authToken != "" {
		req.SetAuthToken(c.authToken)
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		req.SetHeader("Content-Type", "application/json").SetBody(data)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceID, err, "http request failed")
		return nil, fmt.Errorf("http request failed (trace ID: %s): %w", traceID, err)
	}

	if c.logRequests {
		c.logger.Info("request complete", "method", method, "path", path, "status", resp.StatusCode(), "duration", duration, "traceparent", header.Get("Traceparent"))
	}

	if c.logResponses && len(resp.Body()) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(resp.Body()))
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		Duration:   duration,
		TraceID:    traceID,
		Request:    resp.Request.RawRequest,
	}, nil
}

// ListUsers lists users, params may be nil.
func (c *Client) ListUsers(ctx context.Context, params *ListUsersParams) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.ListUsers(), params.query(), nil)
}

func (c *Client) GetUser(ctx context.Context, userID int64) (*Response, error) {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, user openapi.UserCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.CreateUser(), nil, user)
}

// ReplaceUser overwrites every field of a user.
func (c *Client) ReplaceUser(ctx context.Context, userID int64, user openapi.UserCreate) (*Response, error) {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPut, path, nil, user)
}

// UpdateUser sends only the fields present in the patch.
func (c *Client) UpdateUser(ctx context.Context, userID int64, patch openapi.UserPatch) (*Response, error) {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPatch, path, nil, patch)
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) (*Response, error) {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
