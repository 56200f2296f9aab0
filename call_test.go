package grpcweb

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildRequestFixedHeadersWinOverCaller(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "text/plain")
	header.Set("Accept", "text/plain")
	header.Set("X-Custom", "yes")

	req, err := buildRequest(context.Background(), "http://example.test", "/pkg.Svc/Method", header, []byte("body"), FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, contentTypeGRPCWebProto, req.Header.Get("Content-Type"))
	assert.Equal(t, contentTypeGRPCWebProto, req.Header.Get("Accept"))
	assert.Equal(t, "1", req.Header.Get("X-Grpc-Web"))
	assert.Equal(t, "yes", req.Header.Get("X-Custom"))
	assert.Equal(t, "http://example.test/pkg.Svc/Method", req.URL.String())

	got, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
}

func TestBuildRequestAppliesFetchOptionHeaders(t *testing.T) {
	mode := ModeNoCORS
	req, err := buildRequest(context.Background(), "http://example.test", "/", http.Header{}, nil, FetchOptions{Mode: &mode})
	require.NoError(t, err)

	assert.Equal(t, "no-cors", req.Header.Get("js.fetch:mode"))
	assert.Equal(t, "same-origin", req.Header.Get("js.fetch:credentials"))
	assert.Equal(t, "follow", req.Header.Get("js.fetch:redirect"))

	opts, ok := FetchOptionsFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, ModeNoCORS, *opts.Mode)
}

func TestBuildResponseMissingContentType(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{},
		Body:   io.NopCloser(nil),
	}
	guard := newCancelGuard(context.Background())
	_, err := buildResponse(resp, guard, zap.NewNop())
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeMissingContentTypeHeader, e.Code)
}

func TestBuildResponseMissingBody(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", contentTypeGRPCWebProto)
	resp := &http.Response{
		Header: header,
		Body:   nil,
	}
	guard := newCancelGuard(context.Background())
	_, err := buildResponse(resp, guard, zap.NewNop())
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeMissingResponseBody, e.Code)
}
