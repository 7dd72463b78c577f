// Package api is the HTTP boundary to the remote recipe service.
package api

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

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/telemetry"
)

const (
	DefaultBaseURL = "https://server-ivym.onrender.com"
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 2

	scopeName = "github.com/sandeepkv93/chefschoice/api"
)

// Client talks to the recipe service. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Retries    int

	log        *zap.Logger
	newBackOff func() backoff.BackOff
	newID      func() string
	tracer     trace.Tracer
	requests   metric.Int64Counter
	failures   metric.Int64Counter
	duration   metric.Float64Histogram
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithRetries sets how many times an idempotent read is retried after a
// transient failure. Writes are never retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.Retries = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithBackOff replaces the retry schedule. The factory is called per request
// because BackOff implementations are stateful.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) {
		if fn != nil {
			c.newBackOff = fn
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Retries:    DefaultRetries,
		log:        zap.NewNop(),
		newBackOff: defaultBackOff,
		newID:      uuid.NewString,
		tracer:     telemetry.Tracer(scopeName),
	}
	for _, opt := range opts {
		opt(c)
	}
	m := telemetry.Meter(scopeName)
	c.requests, _ = m.Int64Counter("chefs.api.requests",
		metric.WithDescription("Requests sent to the recipe service"),
	)
	c.failures, _ = m.Int64Counter("chefs.api.errors",
		metric.WithDescription("Requests to the recipe service that failed"),
	)
	c.duration, _ = m.Float64Histogram("chefs.api.duration",
		metric.WithDescription("Recipe service request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return c
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second
	return bo
}

// ListHomePublic fetches the anonymous listing shown on the home view.
func (c *Client) ListHomePublic(ctx context.Context) ([]model.Recipe, error) {
	return c.list(ctx, "list_home_public", PathHomePublic, "")
}

// ListCatalogPublic fetches the anonymous listing shown on the catalog view.
func (c *Client) ListCatalogPublic(ctx context.Context) ([]model.Recipe, error) {
	return c.list(ctx, "list_catalog_public", PathCatalogPublic, "")
}

// ListOwned fetches the listing for the holder of token.
func (c *Client) ListOwned(ctx context.Context, token string) ([]model.Recipe, error) {
	return c.list(ctx, "list_owned", PathOwned, token)
}

func (c *Client) SearchPublic(ctx context.Context, query string) (SearchResult, error) {
	return c.search(ctx, "search_public", PathPublicSearch, query, "")
}

func (c *Client) SearchOwned(ctx context.Context, query, token string) (SearchResult, error) {
	return c.search(ctx, "search_owned", PathOwnedSearch, query, token)
}

// UpdateRecipe sends the whole draft as the new field values of recipe id.
func (c *Client) UpdateRecipe(ctx context.Context, id string, draft model.Draft) error {
	if _, err := c.do(ctx, call{
		op:     "update_recipe",
		method: http.MethodPut,
		route:  PathRecipe + "{id}",
		path:   PathRecipe + url.PathEscape(id),
		body:   draft,
	}); err != nil {
		return &UpdateError{Op: "update", ID: id, Err: err}
	}
	return nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := c.do(ctx, call{
		op:     "delete_recipe",
		method: http.MethodDelete,
		route:  PathRecipe + "{id}",
		path:   PathRecipe + url.PathEscape(id),
	}); err != nil {
		return &UpdateError{Op: "delete", ID: id, Err: err}
	}
	return nil
}

func (c *Client) list(ctx context.Context, op, path, token string) ([]model.Recipe, error) {
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, route: path, path: path, token: token, retry: true})
	if err != nil {
		return nil, err
	}
	return decodeRecipes(op, body)
}

func (c *Client) search(ctx context.Context, op, prefix, query, token string) (SearchResult, error) {
	body, err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		route:  prefix + "{query}",
		path:   prefix + url.PathEscape(query),
		token:  token,
		retry:  true,
	})
	if err != nil {
		// The service answers an unmatched search with 404 and a message body.
		var fe *FetchError
		if errors.As(err, &fe) && fe.Status == http.StatusNotFound {
			if res, perr := decodeSearch(op, fe.body); perr == nil && res.NoMatch {
				return res, nil
			}
		}
		return SearchResult{}, err
	}
	return decodeSearch(op, body)
}

type call struct {
	op     string
	method string
	route  string
	path   string
	token  string
	body   any
	retry  bool
}

// do sends one logical request, retrying transient read failures.
func (c *Client) do(ctx context.Context, in call) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "api."+in.op, trace.WithAttributes(
		attribute.String("http.method", in.method),
		attribute.String("http.route", in.route),
		attribute.Bool("chefs.authenticated", in.token != ""),
	))
	defer span.End()
	attrs := metric.WithAttributes(attribute.String("op", in.op))
	start := time.Now()

	var payload []byte
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = raw
	}

	retries := 0
	if in.retry {
		retries = c.Retries
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(retries)), ctx)

	attempt := 0
	var out []byte
	err := backoff.Retry(func() error {
		attempt++
		c.requests.Add(ctx, 1, attrs)
		body, err := c.send(ctx, in, payload)
		if err == nil {
			out = body
			return nil
		}
		var fe *FetchError
		if ctx.Err() != nil || !errors.As(err, &fe) || !fe.Temporary() {
			return backoff.Permanent(err)
		}
		c.log.Warn("recipe service request failed, may retry",
			zap.String("op", in.op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, bo)

	c.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	if err != nil {
		c.failures.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, in call, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, in.method, c.BaseURL+in.path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.newID())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The service expects the raw token, without a scheme prefix.
	if in.token != "" {
		req.Header.Set("Authorization", in.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: in.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: in.op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Op: in.op, Status: resp.StatusCode, body: body}
	}
	c.log.Debug("recipe service request",
		zap.String("op", in.op),
		zap.String("method", in.method),
		zap.String("route", in.route),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}
