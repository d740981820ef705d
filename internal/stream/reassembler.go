package stream

import (
	"strings"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
)

const (
	// DoneSentinel is the payload of the record that ends the stream
	DoneSentinel = "[DONE]"

	dataPrefix         = "data:"
	invalidTokenMarker = "Invalid token"
)

// Reassembler turns raw fragments into record payloads. It is not safe for
// concurrent use; each translation owns one.
type Reassembler struct {
	buf string
}

// NewReassembler returns an empty reassembler
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Feed appends fragment to the buffer and returns the trimmed payloads of
// every complete data record, in arrival order. A fragment mentioning an
// invalid token is not buffered and yields a secretKey error.
func (r *Reassembler) Feed(fragment string) ([]string, error) {
	if strings.Contains(fragment, invalidTokenMarker) {
		return nil, apierr.InvalidToken()
	}
	r.buf += fragment

	var payloads []string
	for {
		idx := strings.IndexByte(r.buf, '\n')
		if idx < 0 {
			break
		}
		line := r.buf[:idx]
		r.buf = r.buf[idx+1:]

		if payload, ok := parseLine(line); ok {
			payloads = append(payloads, payload)
		}
	}
	return payloads, nil
}

// Flush returns the payload of a final data line that was never terminated
// by a newline, and empties the buffer.
func (r *Reassembler) Flush() (string, bool) {
	line := r.buf
	r.buf = ""
	return parseLine(line)
}

// Buffered returns the number of bytes waiting for a line terminator
func (r *Reassembler) Buffered() int {
	return len(r.buf)
}

// parseLine extracts the payload of a "data:" line. Blank lines, comments and
// other SSE fields (event:, id:, retry:) carry no payload.
func parseLine(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")
	rest, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return "", false
	}
	payload := strings.TrimSpace(rest)
	if payload == "" {
		return "", false
	}
	return payload, true
}
