package grpcweb

import "strings"

// Encoding is the wire transport used for a gRPC-Web response body.
type Encoding int

const (
	// EncodingBinary carries frames as raw bytes.
	EncodingBinary Encoding = iota
	// EncodingBase64 carries the whole frame stream base64-encoded.
	EncodingBase64
)

func (e Encoding) String() string {
	if e == EncodingBase64 {
		return "base64"
	}
	return "binary"
}

const (
	contentTypeGRPCWeb          = "application/grpc-web"
	contentTypeGRPCWebProto     = "application/grpc-web+proto"
	contentTypeGRPCWebText      = "application/grpc-web-text"
	contentTypeGRPCWebTextProto = "application/grpc-web-text+proto"
)

// encodingFromContentType classifies a (possibly parameterized) MIME
// string into an Encoding. The content-type may carry the gRPC-Web
// marker in any ";"-delimited position, e.g.
// "charset=utf-8; application/grpc-web+proto"; the first token that
// matches the accepted set wins.
func encodingFromContentType(contentType string) (Encoding, error) {
	for _, token := range strings.Split(contentType, ";") {
		switch strings.TrimSpace(token) {
		case contentTypeGRPCWeb, contentTypeGRPCWebProto:
			return EncodingBinary, nil
		case contentTypeGRPCWebText, contentTypeGRPCWebTextProto:
			return EncodingBase64, nil
		}
	}
	return 0, newError(CodeInvalidContentType, "unrecognized gRPC-Web content-type: "+contentType, nil)
}
