package testutil

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// DeltaRecord returns one SSE record whose first choice carries content
func DeltaRecord(content string) string {
	encoded, _ := json.Marshal(content)
	return `data: {"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":` +
		string(encoded) + `},"finish_reason":null}]}` + "\n\n"
}

// DoneRecord is the record that terminates a chat-completion stream
const DoneRecord = "data: [DONE]\n\n"

// SSEStream joins delta records for each content followed by the done record
func SSEStream(contents ...string) string {
	var b strings.Builder
	// OpenAI opens with a role-only delta that has no content field
	b.WriteString(`data: {"id":"chatcmpl-1","choices":[{"index":0,"delta":{"role":"assistant"}}]}` + "\n\n")
	for _, c := range contents {
		b.WriteString(DeltaRecord(c))
	}
	b.WriteString(DoneRecord)
	return b.String()
}

// RandomSplit cuts s into fragments at random byte offsets. Multi-byte
// characters may be cut in half on purpose.
func RandomSplit(s string, rnd *rand.Rand) []string {
	var parts []string
	for len(s) > 0 {
		n := rnd.Intn(len(s)) + 1
		if n > 7 {
			n = rnd.Intn(7) + 1
		}
		parts = append(parts, s[:n])
		s = s[n:]
	}
	return parts
}

// SplitEvery cuts s into fragments of size bytes
func SplitEvery(s string, size int) []string {
	var parts []string
	for len(s) > size {
		parts = append(parts, s[:size])
		s = s[size:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
