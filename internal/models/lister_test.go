package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/provider"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/translation"
)

const modelsResponse = `{"object":"list","data":[
	{"id":"gpt-4o-mini","object":"model","owned_by":"openai"},
	{"id":"tts-1","object":"model","owned_by":"openai"},
	{"id":"dall-e-3","object":"model","owned_by":"openai"},
	{"id":"o3-mini","object":"model","owned_by":"openai"},
	{"id":"gpt-4o-realtime-preview","object":"model","owned_by":"openai"},
	{"id":"gpt-3.5-turbo","object":"model","owned_by":"openai"},
	{"id":"text-embedding-3-small","object":"model","owned_by":"openai"}
]}`

func newModelsServer(t *testing.T, wantPath string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("request path = %q, want %q", r.URL.Path, wantPath)
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-first" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(modelsResponse))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewLister(t *testing.T) {
	tests := []struct {
		name     string
		cfg      translation.Config
		wantKind provider.Kind
	}{
		{"openai default", translation.Config{APIKeys: "sk-first,sk-second"}, provider.OpenAI},
		{"azure", translation.Config{APIKeys: "k", APIURL: "my.openai.azure.com"}, provider.Azure},
		{"gateway", translation.Config{APIKeys: "k", APIURL: "https://gateway.ai.cloudflare.com/v1/a/g/openai"}, provider.CloudflareGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := NewLister(tt.cfg)
			if lister.client == nil {
				t.Fatal("OpenAI client not initialized")
			}
			if lister.kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", lister.kind, tt.wantKind)
			}
		})
	}

	if got := NewLister(translation.Config{APIKeys: " sk-first , sk-second"}).apiKey; got != "sk-first" {
		t.Errorf("apiKey = %q, want sk-first", got)
	}
}

func TestClientConfig(t *testing.T) {
	c := clientConfig(provider.OpenAI, "https://api.openai.com", "k", "")
	if c.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("openai BaseURL = %q", c.BaseURL)
	}

	c = clientConfig(provider.Azure, "https://my.openai.azure.com", "k", "")
	if c.APIVersion != provider.DefaultAzureAPIVersion {
		t.Errorf("azure APIVersion = %q", c.APIVersion)
	}

	c = clientConfig(provider.CloudflareGateway, "https://gateway.ai.cloudflare.com/v1/a/g/openai", "k", "")
	if c.BaseURL != "https://gateway.ai.cloudflare.com/v1/a/g/openai" {
		t.Errorf("gateway BaseURL = %q", c.BaseURL)
	}
}

func TestIsChatModel(t *testing.T) {
	tests := map[string]bool{
		"gpt-4o":                  true,
		"gpt-3.5-turbo":           true,
		"chatgpt-4o-latest":       true,
		"o1":                      true,
		"o3-mini":                 true,
		"tts-1":                   false,
		"gpt-4o-audio-preview":    false,
		"gpt-4o-realtime-preview": false,
		"dall-e-3":                false,
		"omni-moderation-latest":  false,
		"whisper-1":               false,
	}

	for id, want := range tests {
		if got := isChatModel(id); got != want {
			t.Errorf("isChatModel(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestChatModels(t *testing.T) {
	server := newModelsServer(t, "/v1/models")
	lister := NewLister(translation.Config{APIKeys: "sk-first,sk-second", APIURL: server.URL})

	got, err := lister.ChatModels(context.Background())
	if err != nil {
		t.Fatalf("ChatModels() error: %v", err)
	}
	want := []string{"gpt-3.5-turbo", "gpt-4o-mini", "o3-mini"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChatModels() = %v, want %v", got, want)
	}
}

func TestListAvailableModels(t *testing.T) {
	server := newModelsServer(t, "/v1/models")
	lister := NewLister(translation.Config{APIKeys: "sk-first", APIURL: server.URL})

	var buf bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &buf); err != nil {
		t.Fatalf("ListAvailableModels() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Available chat models (openai)", "  gpt-4o-mini\n", "--model custom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "tts-1") {
		t.Errorf("output lists a non-chat model:\n%s", out)
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister(translation.Config{})

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "API key not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(translation.Config{APIKeys: apiKey})

	var buf bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &buf); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
	t.Log(buf.String())
}
