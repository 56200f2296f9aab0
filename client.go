package grpcweb

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Doer abstracts the host HTTP facility: anything that can dispatch
// an *http.Request and hand back a response is a valid host, whether
// that is *http.Client on a normal OS process, the same type compiled
// GOOS=js (backed by the browser's fetch), or a test double.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a gRPC-Web service adapter: a ready/call pair consumable
// by a generic RPC stub. It carries only a base URL, a Doer,
// FetchOptions and a logger, so it is cheap to copy — callers are free to pass it
// by value.
type Client struct {
	baseURL string
	doer    Doer
	options FetchOptions
	logger  *zap.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithDoer overrides the host HTTP facility. The default is
// http.DefaultClient.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithClientFetchOptions sets the FetchOptions applied to every call
// made through this Client, unless overridden per-call.
func WithClientFetchOptions(o FetchOptions) Option {
	return func(c *Client) { c.options = o }
}

// WithClientLogger attaches a zap logger. The default is a no-op
// logger so importing this package never forces log output; a nil
// logger also selects the no-op logger.
func WithClientLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// NewClient creates a Client dispatching to baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := Client{
		baseURL: baseURL,
		doer:    http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Ready reports whether the client can accept a call. A gRPC-Web
// client over HTTP has no connection to warm up — readiness is always
// immediately satisfied.
func (c Client) Ready(_ context.Context) error { return nil }

// Invoke dispatches one unary gRPC-Web request and returns the
// upstream response with its Body replaced by a ResponseBody. A call
// moves through dispatching, to headers received, to streaming the
// body; transport failures are surfaced once, here, as a terminal
// error — the decoder never retries.
func (c Client) Invoke(ctx context.Context, uri string, header http.Header, body []byte, callOpts ...CallOption) (*http.Response, error) {
	opts := c.options
	for _, opt := range callOpts {
		opt(&opts)
	}

	guard := newCancelGuard(ctx)
	if opts.Timeout > 0 {
		guard.SetTimeout(opts.Timeout)
	}

	callID := uuid.NewString()
	logger := c.logger.With(zap.String("call_id", callID), zap.String("uri", uri))

	req, err := buildRequest(guard.Context(), c.baseURL, uri, header, body, opts)
	if err != nil {
		guard.Close()
		return nil, err
	}

	logger.Debug("dispatching gRPC-Web call")
	resp, err := c.doer.Do(req)
	if err != nil {
		guard.Close()
		derr := classifyDispatchError(guard, err)
		logger.Warn("dispatch failed", zap.Error(derr))
		return nil, derr
	}

	logger.Debug("headers received", zap.Int("status", resp.StatusCode))

	out, err := buildResponse(resp, guard, logger)
	if err != nil {
		guard.Close()
		logger.Warn("response envelope failed", zap.Error(err))
		return nil, err
	}

	return out, nil
}
