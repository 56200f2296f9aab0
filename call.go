package grpcweb

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	headerGRPCWeb     = "X-Grpc-Web"
)

// buildRequest composes the absolute URL by plain string concatenation
// (the caller controls URI shape), seeds the fixed gRPC-Web headers,
// copies over the caller's headers without duplicating content-type
// or accept, and attaches the fully-buffered request body: request
// bodies are read in full before dispatch, since this client has no
// use for a streaming request body.
func buildRequest(ctx context.Context, baseURL, uri string, header http.Header, body []byte, opts FetchOptions) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+uri, bytes.NewReader(body))
	if err != nil {
		return nil, newError(CodeHTTP, "building request", err)
	}

	req.Header.Set(headerContentType, contentTypeGRPCWebProto)
	req.Header.Set(headerAccept, contentTypeGRPCWebProto)
	req.Header.Set(headerGRPCWeb, "1")

	for name, values := range header {
		canonical := http.CanonicalHeaderKey(name)
		if canonical == headerContentType || canonical == headerAccept {
			continue
		}
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	return opts.apply(req), nil
}

// buildResponse mirrors the upstream response's status and headers
// into the outgoing envelope, validates the two fields a gRPC-Web
// response must carry, and wraps the stream in a ResponseBody.
func buildResponse(resp *http.Response, guard *CancelGuard, logger *zap.Logger) (*http.Response, error) {
	contentType := resp.Header.Get(headerContentType)
	if contentType == "" {
		resp.Body.Close()
		return nil, newError(CodeMissingContentTypeHeader, "upstream response is missing a content-type header", nil)
	}
	if resp.Body == nil {
		return nil, newError(CodeMissingResponseBody, "upstream response has no body", nil)
	}

	rb, err := newResponseBody(resp.Body, contentType, guard, logger)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = rb
	return resp, nil
}

// classifyDispatchError distinguishes a timeout abort from any other
// host HTTP failure.
func classifyDispatchError(guard *CancelGuard, err error) error {
	if cause := guard.Cause(); errors.Is(cause, ErrTimedOut) {
		return newError(CodeHostHTTP, "call timed out", ErrTimedOut)
	}
	return newError(CodeHostHTTP, "dispatching request", err)
}
