package translation

import (
	"context"
	"sync"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
)

// onceSink forwards to the caller's sink and enforces that completion is
// delivered once and that no partial result follows it.
type onceSink struct {
	sink Sink
	once sync.Once
	done bool
	out  Outcome
}

func (s *onceSink) stream(r Result) {
	if s.done || s.sink == nil {
		return
	}
	s.sink.OnStream(r)
}

func (s *onceSink) complete(o Outcome) {
	s.once.Do(func() {
		s.done = true
		s.out = o
		if s.sink != nil {
			s.sink.OnCompletion(o)
		}
	})
}

func (s *onceSink) succeed(r Result) {
	s.complete(Outcome{Result: &r})
}

func (s *onceSink) fail(err *apierr.Error) {
	s.complete(Outcome{Err: err})
}

// chanSink adapts the channel form of Stream
type chanSink struct {
	ctx     context.Context
	results chan<- Result
	outcome chan<- Outcome
}

func (c *chanSink) OnStream(r Result) {
	select {
	case c.results <- r:
	case <-c.ctx.Done():
	}
}

func (c *chanSink) OnCompletion(o Outcome) {
	c.outcome <- o
}

// SinkFuncs adapts plain functions to a Sink. Nil fields are skipped.
type SinkFuncs struct {
	Stream     func(Result)
	Completion func(Outcome)
}

func (f SinkFuncs) OnStream(r Result) {
	if f.Stream != nil {
		f.Stream(r)
	}
}

func (f SinkFuncs) OnCompletion(o Outcome) {
	if f.Completion != nil {
		f.Completion(o)
	}
}
