package models

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/provider"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/translation"
)

// Lister handles listing available chat models
type Lister struct {
	apiKey string
	kind   provider.Kind
	client *openai.Client
}

// NewLister creates a new model lister for the endpoint in cfg. The first
// configured key is used.
func NewLister(cfg translation.Config) *Lister {
	apiKey := provider.SplitKeys(cfg.APIKeys)[0]
	base := provider.NormalizeBaseURL(cfg.APIURL)
	kind := provider.Detect(base)

	return &Lister{
		apiKey: apiKey,
		kind:   kind,
		client: openai.NewClientWithConfig(clientConfig(kind, base, apiKey, cfg.APIVersion)),
	}
}

// clientConfig points go-openai at the same backend lookups use
func clientConfig(kind provider.Kind, base, apiKey, apiVersion string) openai.ClientConfig {
	switch kind {
	case provider.Azure:
		c := openai.DefaultAzureConfig(apiKey, base)
		if apiVersion == "" {
			apiVersion = provider.DefaultAzureAPIVersion
		}
		c.APIVersion = apiVersion
		return c
	case provider.CloudflareGateway:
		c := openai.DefaultConfig(apiKey)
		c.BaseURL = base
		return c
	default:
		c := openai.DefaultConfig(apiKey)
		c.BaseURL = base + "/v1"
		return c
	}
}

var reasoningModel = regexp.MustCompile(`^o\d`)

// isChatModel keeps models that can serve chat completions
func isChatModel(id string) bool {
	if strings.Contains(id, "tts") || strings.Contains(id, "audio") ||
		strings.Contains(id, "realtime") || strings.Contains(id, "transcribe") {
		return false
	}
	return strings.Contains(id, "gpt") || strings.Contains(id, "chat") || reasoningModel.MatchString(id)
}

// ChatModels returns the sorted ids of the chat models visible to the key
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("API key not found. Set OPENAI_API_KEY environment variable or configure openai.api_keys in .openai-dictionary.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

// ListAvailableModels prints the chat models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	chatModels, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Available chat models (%s):\n", l.kind)
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}
	fmt.Fprintf(w, "\nUse one with --model, or --model %s --custom-model NAME.\n", translation.CustomModel)
	return nil
}
