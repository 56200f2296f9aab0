package grpcweb

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// FrameKind distinguishes the two things a ResponseBody ever yields.
type FrameKind int

const (
	// FrameKindData is an ordinary gRPC-Web data frame.
	FrameKindData FrameKind = iota
	// FrameKindTrailers is the terminal trailer block, yielded exactly
	// once.
	FrameKindTrailers
)

// Frame is one unit produced by ResponseBody.Next.
type Frame struct {
	Kind FrameKind
	// Data holds the frame's 1-byte flag, 4-byte big-endian length,
	// and payload, verbatim, when Kind == FrameKindData.
	Data []byte
	// Trailers holds the parsed trailer multimap when
	// Kind == FrameKindTrailers.
	Trailers Trailers
}

// ResponseBody is the pull-driven frame producer: it glues the
// encoded-bytes buffer, the frame state machine and the trailer
// parser to an underlying HTTP response stream, and advances only
// when its consumer calls Next.
//
// ResponseBody also implements io.ReadCloser so it can sit directly in
// an *http.Response's Body field for a consumer that just wants the
// flattened, re-framed byte stream (a generic gRPC codec); call Next
// instead for frame-aware access to the same stream.
type ResponseBody struct {
	stream     io.ReadCloser
	buf        *encodedBuffer
	machine    *frameMachine
	guard      *CancelGuard
	logger     *zap.Logger
	streamDone bool

	readBuf []byte

	pendingRead      []byte
	trailers         Trailers
	trailersReceived bool
}

func newResponseBody(stream io.ReadCloser, contentType string, guard *CancelGuard, logger *zap.Logger) (*ResponseBody, error) {
	encoding, err := encodingFromContentType(contentType)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseBody{
		stream:  stream,
		buf:     newEncodedBuffer(encoding),
		machine: &frameMachine{},
		guard:   guard,
		logger:  logger,
		readBuf: make([]byte, 32*1024),
	}, nil
}

// Next pulls the next frame of the response. It blocks only on reads
// of the underlying byte stream — all base64 decode, frame parsing
// and trailer parsing happen synchronously within the call — and
// returns (nil, io.EOF) once the trailer block has been yielded.
//
// Cancellation is carried by the CancelGuard bound to the original
// request context, not by ctx: ctx is an additional, best-effort exit
// point checked between reads, since an in-flight Read on the
// underlying stream can only be interrupted by the request's own
// context (see Close).
func (rb *ResponseBody) Next(ctx context.Context) (*Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		produced, trailerReady, err := rb.machine.step(rb.buf)
		if err != nil {
			return nil, err
		}
		if produced {
			return &Frame{Kind: FrameKindData, Data: rb.machine.takePending()}, nil
		}
		if trailerReady {
			rb.trailers = rb.machine.trailers
			rb.trailersReceived = true
			return &Frame{Kind: FrameKindTrailers, Trailers: rb.machine.trailers}, nil
		}
		if rb.machine.state == stateDone {
			return nil, io.EOF
		}
		if rb.streamDone {
			return nil, newError(CodeMalformedResponse, "response body ended before the trailer frame", nil)
		}

		n, rerr := rb.stream.Read(rb.readBuf)
		if n > 0 {
			rb.logger.Debug("appended response chunk", zap.Int("bytes", n))
			if aerr := rb.buf.append(rb.readBuf[:n]); aerr != nil {
				return nil, aerr
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				rb.streamDone = true
				continue
			}
			rb.logger.Warn("host HTTP read failed", zap.Error(rerr))
			return nil, newError(CodeHostHTTP, "reading response body", rerr)
		}
	}
}

// Read implements io.Reader by flattening the frame stream back into
// plain bytes, handing the trailer block off separately: once the
// trailer frame is reached, Read returns (0, io.EOF) and the parsed
// trailers become available from Trailers.
func (rb *ResponseBody) Read(p []byte) (int, error) {
	if len(rb.pendingRead) == 0 {
		frame, err := rb.Next(context.Background())
		if err != nil {
			return 0, err
		}
		if frame.Kind == FrameKindTrailers {
			rb.trailers = frame.Trailers
			rb.trailersReceived = true
			return 0, io.EOF
		}
		rb.pendingRead = frame.Data
	}

	n := copy(p, rb.pendingRead)
	rb.pendingRead = rb.pendingRead[n:]
	return n, nil
}

// Trailers returns the trailer multimap once Read (or Next) has
// reached it, and whether it has been received yet.
func (rb *ResponseBody) Trailers() (Trailers, bool) {
	return rb.trailers, rb.trailersReceived
}

// Close aborts the underlying HTTP call via the CancelGuard and
// releases the byte stream. Go has no destructors, so a consumer that
// wants to stop reading early must call this explicitly rather than
// relying on garbage collection.
func (rb *ResponseBody) Close() error {
	err := rb.stream.Close()
	rb.guard.Close()
	return err
}
