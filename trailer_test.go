package grpcweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrailersOrderedMultimap(t *testing.T) {
	block := []byte("Grpc-Status: 0\r\nGrpc-Message: ok\r\nset-cookie: a=1\r\nset-cookie: b=2\r\n")

	trailers, err := parseTrailers(block)
	require.NoError(t, err)

	assert.Equal(t, "0", trailers.Get("grpc-status"))
	assert.Equal(t, "ok", trailers.Get("grpc-message"))
	assert.Equal(t, []string{"a=1", "b=2"}, trailers.Values("set-cookie"))
	assert.Equal(t, 4, trailers.Len())

	var seen []string
	trailers.Range(func(k, v string) { seen = append(seen, k) })
	assert.Equal(t, []string{"grpc-status", "grpc-message", "set-cookie", "set-cookie"}, seen)
}

func TestParseTrailersLowercasesNames(t *testing.T) {
	trailers, err := parseTrailers([]byte("GRPC-STATUS: 0\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "0", trailers.Get("grpc-status"))
	assert.Equal(t, "0", trailers.Get("GRPC-STATUS"))
}

func TestParseTrailersSkipsBlankLines(t *testing.T) {
	trailers, err := parseTrailers([]byte("grpc-status: 0\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, trailers.Len())
}

func TestParseTrailersMalformedLine(t *testing.T) {
	_, err := parseTrailers([]byte("not-a-header-line\r\n"))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeHeaderParsing, e.Code)
}

func TestParseTrailersInvalidHeaderName(t *testing.T) {
	_, err := parseTrailers([]byte("bad name: value\r\n"))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeInvalidHeaderName, e.Code)
}

func TestParseTrailersInvalidHeaderValue(t *testing.T) {
	_, err := parseTrailers([]byte("grpc-message: bad\x00value\r\n"))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeInvalidHeaderValue, e.Code)
}
