package provider

import (
	"github.com/sashabaranov/go-openai"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/prompt"
)

// Sampling parameters sent with every lookup
const (
	Temperature      = 0.2
	MaxTokens        = 1000
	TopP             = 1
	FrequencyPenalty = 1
	PresencePenalty  = 1
)

// NewRequestBody builds the streaming chat-completion request
func NewRequestBody(model string, p prompt.Prompts) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:            model,
		Stream:           true,
		Temperature:      Temperature,
		MaxTokens:        MaxTokens,
		TopP:             TopP,
		FrequencyPenalty: FrequencyPenalty,
		PresencePenalty:  PresencePenalty,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.User,
			},
		},
	}
}
