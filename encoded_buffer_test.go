package grpcweb

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodedBufferBinaryPassthrough(t *testing.T) {
	b := newEncodedBuffer(EncodingBinary)
	require.NoError(t, b.append([]byte("hello")))
	require.NoError(t, b.append([]byte(" world")))
	assert.Equal(t, 11, b.len())
	assert.Equal(t, []byte("hello world"), b.take(b.len()))
	assert.True(t, b.isEmpty())
}

func TestEncodedBufferBase64QuantumAligned(t *testing.T) {
	raw := []byte("the quick brown fox jumps over the lazy dog 0123456789")
	encoded := base64.StdEncoding.EncodeToString(raw)

	// Feed the base64 text in small, arbitrary, non-quantum-aligned
	// chunks, draining the decoded view after each append, and verify
	// that everything drained, concatenated, equals the original bytes.
	b := newEncodedBuffer(EncodingBase64)
	var decodedSoFar []byte
	for i := 0; i < len(encoded); i += 3 {
		end := i + 3
		if end > len(encoded) {
			end = len(encoded)
		}
		require.NoError(t, b.append([]byte(encoded[i:end])))
		decodedSoFar = append(decodedSoFar, b.take(b.len())...)
	}

	assert.True(t, bytes.Equal(decodedSoFar, raw))
}

func TestEncodedBufferBase64Residue(t *testing.T) {
	raw := []byte("abc")
	encoded := base64.StdEncoding.EncodeToString(raw) // 4 chars, one quantum

	b := newEncodedBuffer(EncodingBase64)
	// Feed all but the last base64 character: not quantum-aligned, so
	// nothing should decode yet.
	require.NoError(t, b.append([]byte(encoded[:3])))
	assert.Equal(t, 0, b.len())
	assert.Len(t, b.residue, 3)

	require.NoError(t, b.append([]byte(encoded[3:])))
	assert.Equal(t, raw, b.take(b.len()))
	assert.Len(t, b.residue, 0)
}

func TestEncodedBufferBase64Malformed(t *testing.T) {
	b := newEncodedBuffer(EncodingBase64)
	err := b.append([]byte("!@#$"))
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeBase64Decode, e.Code)
}

func TestEncodedBufferTakeDoesNotAliasFutureAppends(t *testing.T) {
	b := newEncodedBuffer(EncodingBinary)
	require.NoError(t, b.append([]byte("abcd")))
	taken := b.take(2)
	require.NoError(t, b.append([]byte("EFGH")))
	// Mutating the buffer after a take must not retroactively change
	// bytes already handed to a caller.
	assert.Equal(t, []byte("ab"), taken)
	assert.Equal(t, []byte("cdEFGH"), b.take(b.len()))
}
