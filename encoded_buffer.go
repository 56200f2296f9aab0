package grpcweb

import "encoding/base64"

// encodedBuffer hides the transport encoding from the frame state
// machine, exposing a plain decoded byte view regardless of whether
// the wire carried raw bytes or base64 text.
//
// In base64 mode, only a multiple of 4 raw bytes is ever decoded at a
// time; any trailing, not-yet-quantum-aligned bytes are held in
// residue until the next append completes the quantum.
type encodedBuffer struct {
	encoding Encoding
	residue  []byte // unaligned base64 input, always len < 4
	decoded  []byte
}

func newEncodedBuffer(encoding Encoding) *encodedBuffer {
	return &encodedBuffer{encoding: encoding}
}

// append adds newly-received bytes from the wire to the decoded view.
func (b *encodedBuffer) append(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if b.encoding == EncodingBinary {
		b.decoded = append(b.decoded, p...)
		return nil
	}

	b.residue = append(b.residue, p...)

	quantum := (len(b.residue) / 4) * 4
	if quantum == 0 {
		return nil
	}

	dst := make([]byte, base64.StdEncoding.DecodedLen(quantum))
	n, err := base64.StdEncoding.Decode(dst, b.residue[:quantum])
	if err != nil {
		return newError(CodeBase64Decode, "invalid base64 in response body", err)
	}
	b.decoded = append(b.decoded, dst[:n]...)

	remaining := len(b.residue) - quantum
	copy(b.residue, b.residue[quantum:])
	b.residue = b.residue[:remaining]

	return nil
}

func (b *encodedBuffer) len() int { return len(b.decoded) }

func (b *encodedBuffer) isEmpty() bool { return len(b.decoded) == 0 }

// take splits off and returns a fresh copy of the first n bytes of
// the decoded view. The caller guarantees n <= len().
func (b *encodedBuffer) take(n int) []byte {
	out := make([]byte, n)
	copy(out, b.decoded[:n])
	b.decoded = b.decoded[n:]
	if len(b.decoded) == 0 {
		b.decoded = b.decoded[:0]
	}
	return out
}
