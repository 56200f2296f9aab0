package grpcweb

import (
	"errors"
	"fmt"
)

// Code identifies the kind of error this package can produce, mirroring
// the failure taxonomy a gRPC-Web transport has to surface: malformed
// wire data, a non-conforming upstream response, or a failure of the
// host HTTP facility itself.
type Code int

const (
	// CodeInvalidContentType: the response content-type is not one of
	// the gRPC-Web MIME variants.
	CodeInvalidContentType Code = iota
	// CodeMissingContentTypeHeader: the upstream response had no
	// content-type header at all.
	CodeMissingContentTypeHeader
	// CodeMissingResponseBody: the upstream response had no body.
	CodeMissingResponseBody
	// CodeBase64Decode: the base64 text transport contained invalid
	// base64.
	CodeBase64Decode
	// CodeHeaderParsing: a trailer block could not be parsed as
	// CRLF-separated header lines.
	CodeHeaderParsing
	// CodeInvalidHeaderName: a trailer line's name failed RFC 7230
	// token validation.
	CodeInvalidHeaderName
	// CodeInvalidHeaderValue: a trailer line's value failed RFC 7230
	// field-value validation.
	CodeInvalidHeaderValue
	// CodeMalformedResponse: the byte stream ended mid-frame.
	CodeMalformedResponse
	// CodeHostHTTP: the host HTTP facility failed to dispatch, read,
	// or completed via an abort.
	CodeHostHTTP
	// CodeHTTP: building the outgoing request or response envelope
	// failed.
	CodeHTTP
)

func (c Code) String() string {
	switch c {
	case CodeInvalidContentType:
		return "invalid_content_type"
	case CodeMissingContentTypeHeader:
		return "missing_content_type_header"
	case CodeMissingResponseBody:
		return "missing_response_body"
	case CodeBase64Decode:
		return "base64_decode_error"
	case CodeHeaderParsing:
		return "header_parsing_error"
	case CodeInvalidHeaderName:
		return "invalid_header_name"
	case CodeInvalidHeaderValue:
		return "invalid_header_value"
	case CodeMalformedResponse:
		return "malformed_response"
	case CodeHostHTTP:
		return "host_http_error"
	case CodeHTTP:
		return "http_error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every failure path in this
// package, except that ResponseBody.Next returns ctx.Err() unwrapped
// when its ctx is done. It is terminal: once a ResponseBody or Client call returns
// one, the call is over and nothing further is retried.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func newError(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("grpcweb: %s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("grpcweb: %s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, &Error{Code: c}) to match any *Error with
// code c, so callers can classify failures without a type assertion
// on *Error.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// ErrTimedOut is the distinguished reason a CancelGuard aborts a call
// when its deadline timer fires, as opposed to an ordinary consumer
// Close. It surfaces wrapped inside a CodeHostHTTP *Error so a caller
// can tell a deadline apart from any other abort.
var ErrTimedOut = errors.New("grpcweb: call timed out")

// ErrAborted is the reason a CancelGuard aborts a call when its
// consumer closes the ResponseBody before it finishes.
var ErrAborted = errors.New("grpcweb: call aborted")
