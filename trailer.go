package grpcweb

import (
	"bufio"
	"bytes"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// TrailerPair is one name/value entry of a trailer block, in the
// order it appeared on the wire.
type TrailerPair struct {
	Key   string
	Value string
}

// Trailers is the ordered multimap of header pairs carried in a
// gRPC-Web trailer frame. Names are lowercased to match the upstream
// codec's expectation; original casing is not preserved.
type Trailers struct {
	pairs []TrailerPair
}

// Get returns the first value for key, or "" if absent.
func (t Trailers) Get(key string) string {
	key = strings.ToLower(key)
	for _, p := range t.pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Values returns every value for key, in wire order.
func (t Trailers) Values(key string) []string {
	key = strings.ToLower(key)
	var values []string
	for _, p := range t.pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Len reports the number of trailer pairs.
func (t Trailers) Len() int { return len(t.pairs) }

// Range calls fn for every pair in wire order.
func (t Trailers) Range(fn func(key, value string)) {
	for _, p := range t.pairs {
		fn(p.Key, p.Value)
	}
}

// parseTrailers interprets a trailer block (CRLF-separated "name:
// value" lines, terminated by a "\n" sentinel appended by the frame
// machine) as HTTP/1.1 header lines.
func parseTrailers(block []byte) (Trailers, error) {
	var out Trailers

	scanner := bufio.NewScanner(bytes.NewReader(block))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return Trailers{}, newError(CodeHeaderParsing, "malformed trailer line: "+line, nil)
		}

		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if !httpguts.ValidHeaderFieldName(name) {
			return Trailers{}, newError(CodeInvalidHeaderName, "invalid trailer name: "+name, nil)
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return Trailers{}, newError(CodeInvalidHeaderValue, "invalid trailer value for "+name, nil)
		}

		out.pairs = append(out.pairs, TrailerPair{Key: strings.ToLower(name), Value: value})
	}
	if err := scanner.Err(); err != nil {
		return Trailers{}, newError(CodeHeaderParsing, "failed to scan trailer block", err)
	}

	return out, nil
}
