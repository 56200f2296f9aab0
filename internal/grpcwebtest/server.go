// Package grpcwebtest provides a minimal gRPC-Web server fixture for
// exercising the client end-to-end, adapted from the gRPC-Web frame
// writer this repository's decoder was built against (the wire format
// is the same in both directions — only the decoder, in the parent
// package, is in scope for the real client).
package grpcwebtest

import (
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"strings"
	"time"
)

const (
	contentTypeProto     = "application/grpc-web+proto"
	contentTypeTextProto = "application/grpc-web-text+proto"

	dataFrame    byte = 0x00
	trailerFrame byte = 0x80
)

// Script describes one canned gRPC-Web response: a sequence of data
// frame payloads followed by trailer pairs.
type Script struct {
	Messages [][]byte
	Trailers map[string]string
	// Text, when set, serves the response base64-encoded under the
	// "-text" content-type instead of raw binary.
	Text bool
	// Stall, when positive, delays the response before its headers are
	// written so a client-side timeout can be exercised.
	Stall time.Duration
	// ChunkSize, when positive, writes the response chunkSize bytes
	// at a time with a flush after each, to exercise chunk invariance
	// against a real HTTP round trip.
	ChunkSize int
}

func (s Script) encode() []byte {
	var frames []byte
	for _, msg := range s.Messages {
		frames = append(frames, encodeFrame(dataFrame, msg)...)
	}
	frames = append(frames, encodeFrame(trailerFrame, encodeTrailers(s.Trailers))...)
	if s.Text {
		frames = []byte(base64.StdEncoding.EncodeToString(frames))
	}
	return frames
}

// Handler builds an http.Handler that serves script as a gRPC-Web
// response.
func Handler(script Script) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if script.Stall > 0 {
			select {
			case <-time.After(script.Stall):
			case <-r.Context().Done():
				return
			}
		}

		contentType := contentTypeProto
		if script.Text {
			contentType = contentTypeTextProto
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Access-Control-Expose-Headers", "grpc-status, grpc-message")
		w.WriteHeader(http.StatusOK)

		frames := script.encode()

		flusher, _ := w.(http.Flusher)
		chunkSize := script.ChunkSize
		if chunkSize <= 0 {
			chunkSize = len(frames)
			if chunkSize == 0 {
				chunkSize = 1
			}
		}
		for len(frames) > 0 {
			n := chunkSize
			if n > len(frames) {
				n = len(frames)
			}
			w.Write(frames[:n])
			frames = frames[n:]
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// TruncatedHandler serves only the first n bytes of script's encoded
// response and then ends the response, to exercise the malformed
// mid-frame case.
func TruncatedHandler(script Script, n int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := contentTypeProto
		if script.Text {
			contentType = contentTypeTextProto
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		frames := script.encode()
		if n < len(frames) {
			frames = frames[:n]
		}
		w.Write(frames)
	}
}

// NoContentTypeHandler serves script's encoded bytes without a
// content-type header, to exercise a response missing the
// content-type the client requires.
func NoContentTypeHandler(script Script) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A nil value stops net/http from sniffing and adding one.
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusOK)
		w.Write(script.encode())
	}
}

func encodeFrame(flag byte, payload []byte) []byte {
	header := make([]byte, 5)
	header[0] = flag
	binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
	return append(header, payload...)
}

func encodeTrailers(trailers map[string]string) []byte {
	var b strings.Builder
	for k, v := range trailers {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}
