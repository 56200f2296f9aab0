// Package grpcweb is a client-side transport for the gRPC-Web wire
// protocol. It builds gRPC-Web requests, dispatches them over an
// http.Client (or any host that can "do" an *http.Request), and
// decodes the streamed response back into an ordered sequence of
// length-prefixed frames and a terminal trailer block.
//
// The core of the package is ResponseBody: a pull-driven state
// machine that reassembles gRPC-Web frames out of an arbitrarily
// chunked HTTP response body, transparently undoing the base64 text
// transport when present. Everything else — the request builder, the
// Client service adapter, the CancelGuard — exists to get bytes into
// and out of that decoder.
//
// Message serialization, RPC code generation and the upstream gRPC
// stub machinery are out of scope: this package moves opaque framed
// bytes, it never looks inside a data frame's payload.
package grpcweb
