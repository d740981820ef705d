package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is what MockChatServer saw for one call
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// MockChatServer serves a canned chat-completion stream, flushing it in
// fragments of ChunkSize bytes so clients see split records.
type MockChatServer struct {
	*httptest.Server

	StatusCode int
	Body       string
	ChunkSize  int

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewMockChatServer starts a server answering every request with status and body
func NewMockChatServer(t *testing.T, status int, body string) *MockChatServer {
	t.Helper()

	m := &MockChatServer{StatusCode: status, Body: body, ChunkSize: 5}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Close)
	return m
}

func (m *MockChatServer) handle(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.requests = append(m.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     data,
	})
	m.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(m.StatusCode)

	flusher, _ := w.(http.Flusher)
	for _, part := range SplitEvery(m.Body, m.ChunkSize) {
		if _, err := io.WriteString(w, part); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Requests returns a copy of the requests received so far
func (m *MockChatServer) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
