// Package apiclient sends requests to the quiz backend's JSON API. It attaches the bearer token it
// is handed, normalizes response bodies, and turns non-2xx answers into *APIError values.
package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/otel"
	otellogger "github.com/octabyte/quizmaster-client/otel/logger"
	"github.com/octabyte/quizmaster-client/otel/metrics"
)

const (
	DefaultRootURL     = "http://localhost:5000/api"
	DefaultServiceName = "quizmaster-client"

	HeaderRequestID = "X-Request-ID"

	clientName = "quizapi"
)

type Config struct {
	// RootURL is prepended verbatim to every request path.
	RootURL     string
	ServiceName string
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout    time.Duration
	HTTPClient *http.Client
}

type RequestOptions struct {
	Method  string
	Headers map[string]string
	Query   map[string]string
	// Body is sent as is when it is a string or []byte, JSON-encoded otherwise.
	Body any
	// Token is the raw access token. Empty sends an anonymous request.
	Token string
	// Operation names the call in spans and metrics, e.g. "/subjects/{id}/chapters".
	// Defaults to the request path.
	Operation string
}

type Client struct {
	rest        *resty.Client
	root        string
	serviceName string
}

func New(cfg Config) *Client {
	if cfg.RootURL == "" {
		cfg.RootURL = DefaultRootURL
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	var rest *resty.Client
	if cfg.HTTPClient != nil {
		rest = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rest = resty.New()
	}
	if cfg.Timeout > 0 {
		rest.SetTimeout(cfg.Timeout)
	}
	rest.SetLogger(restyLogger{})
	rest.JSONMarshal = json.Marshal
	rest.JSONUnmarshal = json.Unmarshal
	rest.OnBeforeRequest(otel.WithTraceHeaders)

	return &Client{rest: rest, root: cfg.RootURL, serviceName: cfg.ServiceName}
}

func (c *Client) RootURL() string {
	return c.root
}

// Request performs one call to root+path. It never retries and never touches session state:
// deciding what a 401 means is up to the caller.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (Body, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}
	operation := opts.Operation
	if operation == "" {
		operation = path
	}
	url := c.root + path

	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, clientName, method+" "+operation, method, c.root, path)

	req := c.rest.R().SetContext(ctx)
	for key, values := range buildHeaders(opts) {
		req.SetHeader(key, values[0])
	}
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}
	if opts.Body != nil {
		payload, err := encodeBody(opts.Body)
		if err != nil {
			finish(0, err)
			return nil, err
		}
		req.SetBody(payload)
	}

	metrics.IncrementInFlightRequests(ctx, method)
	start := time.Now()
	resp, err := req.Execute(method, url)
	elapsed := time.Since(start)
	metrics.DecrementInFlightRequests(ctx, method)

	if err != nil {
		netErr := &NetworkError{Method: method, URL: url, Err: err}
		metrics.RecordAPIRequest(ctx, method, operation, 0, elapsed)
		otellogger.WarnCtx(ctx, "api request failed",
			zap.String("method", method), zap.String("url", url), zap.Error(err))
		finish(0, netErr)
		return nil, netErr
	}

	status := resp.StatusCode()
	body := parseBody(resp.Body())
	metrics.RecordAPIRequest(ctx, method, operation, status, elapsed)
	otellogger.DebugCtx(ctx, "api request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
	)

	if status < 200 || status > 299 {
		apiErr := newAPIError(status, body)
		finish(status, apiErr)
		return nil, apiErr
	}

	finish(status, nil)
	return body, nil
}

// buildHeaders layers the defaults, the caller's headers and the computed Authorization header,
// later layers winning.
func buildHeaders(opts RequestOptions) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		headers.Set(key, value)
	}
	if opts.Token != "" {
		headers.Set("Authorization", "Bearer "+opts.Token)
	}
	if headers.Get(HeaderRequestID) == "" {
		headers.Set(HeaderRequestID, uuid.NewString())
	}
	return headers
}

func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(v)
	}
}
