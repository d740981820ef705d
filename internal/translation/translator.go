package translation

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/lang"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/prompt"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/provider"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/stream"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/transport"
)

// Translator handles English to Chinese dictionary lookups
type Translator struct {
	cfg      Config
	streamer transport.Streamer
	log      *logrus.Logger
	rnd      provider.Intner
}

// Option customizes a Translator
type Option func(*Translator)

// WithLogger sets the logger used for per-call diagnostics
func WithLogger(l *logrus.Logger) Option {
	return func(t *Translator) {
		t.log = l
	}
}

// WithRand sets the source used to pick an API key
func WithRand(r provider.Intner) Option {
	return func(t *Translator) {
		t.rnd = r
	}
}

// globalRand uses the concurrency-safe top-level math/rand functions
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// NewTranslator creates a new translator instance
func NewTranslator(cfg Config, streamer transport.Streamer, opts ...Option) *Translator {
	t := &Translator{
		cfg:      cfg,
		streamer: streamer,
		log:      logrus.StandardLogger(),
		rnd:      globalRand{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SupportLanguages returns the language codes offered to the host, in order
func (t *Translator) SupportLanguages() []string {
	return lang.Codes()
}

// Translate runs one lookup. Partial results go to sink.OnStream as text
// arrives; the lookup always ends with a single sink.OnCompletion call, whose
// Outcome is also returned. sink may be nil.
func (t *Translator) Translate(ctx context.Context, q Query, sink Sink) Outcome {
	s := &onceSink{sink: sink}
	t.run(ctx, q, s)
	return s.out
}

// Stream is Translate in channel form. Partial results arrive on the first
// channel, which is closed when the lookup ends; the second channel yields
// the Outcome. Callers must drain the results or cancel ctx.
func (t *Translator) Stream(ctx context.Context, q Query) (<-chan Result, <-chan Outcome) {
	results := make(chan Result)
	outcome := make(chan Outcome, 1)

	go func() {
		defer close(outcome)
		defer close(results)
		t.Translate(ctx, q, &chanSink{ctx: ctx, results: results, outcome: outcome})
	}()

	return results, outcome
}

// validate checks the query and configuration before any network call. The
// first failing check wins.
func (t *Translator) validate(q Query) (provider.Endpoint, *apierr.Error) {
	if !lang.Supported(q.From, q.To) {
		return provider.Endpoint{}, apierr.UnsupportedLanguage()
	}
	if t.cfg.Model == CustomModel && t.cfg.CustomModel == "" {
		return provider.Endpoint{}, apierr.CustomModelMissing()
	}
	if strings.TrimSpace(t.cfg.APIKeys) == "" {
		return provider.Endpoint{}, apierr.APIKeysMissing()
	}
	ep, err := provider.Resolve(t.cfg.Endpoint())
	if err != nil {
		return provider.Endpoint{}, apierr.Unknown(err)
	}
	return ep, nil
}

func (t *Translator) run(ctx context.Context, q Query, s *onceSink) {
	ep, verr := t.validate(q)
	if verr != nil {
		t.log.WithField("kind", verr.Kind).Debug("Lookup rejected")
		s.fail(verr)
		return
	}

	model := t.cfg.ModelName()
	log := t.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"provider":   ep.Kind.String(),
		"model":      model,
	})

	prompts := prompt.Build(
		prompt.Vars{Text: q.Text, SourceLang: q.From, TargetLang: q.To},
		prompt.Templates{System: t.cfg.CustomSystemPrompt, User: t.cfg.CustomUserPrompt},
	)
	req := transport.Request{
		URL:     ep.URL,
		Headers: provider.Headers(ep.Kind, provider.PickKey(t.cfg.APIKeys, t.rnd)),
		Body:    provider.NewRequestBody(model, prompts),
	}

	reassembler := stream.NewReassembler()
	acc := stream.NewAccumulator()
	apply := func(payload string) error {
		changed, err := acc.Apply(payload)
		if err != nil {
			return err
		}
		if changed {
			s.stream(newResult(q, acc.Text()))
		}
		return nil
	}

	log.Debug("Sending lookup")
	resp, err := t.streamer.Stream(ctx, req, func(fragment string) error {
		payloads, err := reassembler.Feed(fragment)
		if err != nil {
			return err
		}
		for _, p := range payloads {
			if err := apply(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Lookup failed")
		s.fail(apierr.Unknown(err))
		return
	}

	if resp.StatusCode >= http.StatusBadRequest {
		s.fail(statusError(resp, log))
		return
	}

	if payload, ok := reassembler.Flush(); ok {
		if err := apply(payload); err != nil {
			log.WithError(err).Warn("Final record rejected")
			s.fail(apierr.Unknown(err))
			return
		}
	}

	log.WithField("chars", len([]rune(acc.Text()))).Debug("Lookup complete")
	s.succeed(newResult(q, acc.Text()))
}

func newResult(q Query, text string) Result {
	return Result{From: q.From, To: q.To, Paragraphs: []string{text}}
}

// statusError classifies a failed response. The whole response is kept as
// detail for support.
func statusError(resp *transport.Response, log *logrus.Entry) *apierr.Error {
	detail, err := json.Marshal(struct {
		StatusCode int                 `json:"statusCode"`
		Status     string              `json:"status"`
		Headers    map[string][]string `json:"headers"`
		Body       string              `json:"body"`
	}{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       string(resp.Body),
	})
	if err != nil {
		detail = resp.Body
	}

	fields := logrus.Fields{"status": resp.StatusCode}
	if msg := gjson.GetBytes(resp.Body, "error.message"); msg.Exists() {
		fields["api_message"] = msg.String()
	}
	log.WithFields(fields).Warn("API returned an error status")

	return apierr.FromStatus(resp.StatusCode, string(detail))
}
