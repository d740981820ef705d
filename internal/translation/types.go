package translation

import (
	"strings"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/provider"
)

// CustomModel is the model value that selects Config.CustomModel
const CustomModel = "custom"

// Query is one lookup request
type Query struct {
	Text string
	From string
	To   string
}

// Result is a partial or final translation. Paragraphs always holds the whole
// text accumulated so far as its single element.
type Result struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Paragraphs []string `json:"toParagraphs"`
}

// Text returns the translation carried by the result
func (r Result) Text() string {
	return strings.Join(r.Paragraphs, "\n")
}

// Outcome ends a lookup. Exactly one of Result and Err is set.
type Outcome struct {
	Result *Result
	Err    *apierr.Error
}

// Sink receives the events of a lookup. OnStream may be called any number of
// times before the single OnCompletion call; nothing follows OnCompletion.
type Sink interface {
	OnStream(Result)
	OnCompletion(Outcome)
}

// Config is the user configuration a lookup reads. It is not modified.
type Config struct {
	Model              string
	CustomModel        string
	APIKeys            string
	APIVersion         string
	APIURL             string
	DeploymentName     string
	CustomSystemPrompt string
	CustomUserPrompt   string
}

// ModelName returns the model sent to the API
func (c Config) ModelName() string {
	if c.Model == CustomModel {
		return c.CustomModel
	}
	return c.Model
}

// Endpoint returns the endpoint settings of c
func (c Config) Endpoint() provider.Settings {
	return provider.Settings{
		APIURL:         c.APIURL,
		APIVersion:     c.APIVersion,
		DeploymentName: c.DeploymentName,
	}
}
