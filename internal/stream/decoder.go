package stream

import (
	"encoding/json"
	"strings"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
)

// chunk is the subset of a chat.completion.chunk the dictionary reads.
// Content is a pointer so an absent field can be told apart from "".
type chunk struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Decode parses one record payload. It returns the delta content, or nil when
// the first choice carries no content field. A record without choices is an
// API error; invalid JSON is a parameter error.
func Decode(payload string) (*string, error) {
	var c chunk
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, apierr.ParseFailed(payload, err)
	}
	if len(c.Choices) == 0 {
		return nil, apierr.NoResult(payload)
	}
	return c.Choices[0].Delta.Content, nil
}

// Accumulator holds the translation text assembled so far
type Accumulator struct {
	text   strings.Builder
	frozen bool
}

// NewAccumulator returns an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Apply decodes payload and appends its content. It reports whether the text
// changed and a partial result should be emitted. The [DONE] sentinel is
// skipped. After the first error the accumulator is frozen and ignores
// further payloads.
func (a *Accumulator) Apply(payload string) (bool, error) {
	if a.frozen || payload == DoneSentinel {
		return false, nil
	}
	content, err := Decode(payload)
	if err != nil {
		a.frozen = true
		return false, err
	}
	if content == nil {
		return false, nil
	}
	a.text.WriteString(*content)
	return true, nil
}

// Text returns the accumulated translation
func (a *Accumulator) Text() string {
	return a.text.String()
}

// Frozen reports whether a decode error has ended accumulation
func (a *Accumulator) Frozen() bool {
	return a.frozen
}
