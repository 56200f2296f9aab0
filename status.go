package grpcweb

import (
	"strconv"

	"google.golang.org/grpc/codes"
)

// Status derives the gRPC status carried in a response's trailers. It
// only looks at the grpc-status and grpc-message trailer pairs; it
// never inspects a data frame's payload, since decoding application
// messages is the caller's concern, not this package's.
// codes.Unknown is returned when grpc-status is absent or unparsable.
func Status(trailers Trailers) (codes.Code, string) {
	code := codes.Unknown
	if raw := trailers.Get("grpc-status"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			code = codes.Code(n)
		}
	}
	return code, trailers.Get("grpc-message")
}
