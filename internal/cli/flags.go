package cli

import (
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/lang"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	BatchFile string
	From      string
	To        string
	LogLevel  string
	Lang      string

	// OpenAI flags
	Model          string
	CustomModel    string
	APIURL         string
	APIVersion     string
	DeploymentName string

	// Prompt overrides
	SystemPrompt string
	UserPrompt   string

	// Request flags
	Timeout time.Duration
	Proxy   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		From:     lang.Source,
		To:       lang.Target,
		LogLevel: "warn",
		Model:    openai.GPT3Dot5Turbo,
	}
}
