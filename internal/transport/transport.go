package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	readBufferSize = 4096

	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
)

// Request is one streaming POST
type Request struct {
	URL     string
	Headers map[string]string
	Body    any
}

// Response describes how the stream ended. Body holds the raw response only
// when the status signals an error; successful bodies are consumed as
// fragments.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// FragmentFunc receives each chunk read from the response. Returning an error
// stops the read loop and is passed back from Stream.
type FragmentFunc func(fragment string) error

// Streamer opens a streaming request. It returns the final response once the
// body is exhausted, the callback stops it, or the context ends.
type Streamer interface {
	Stream(ctx context.Context, req Request, onFragment FragmentFunc) (*Response, error)
}

// Config configures the HTTP client and its circuit breaker
type Config struct {
	Timeout         time.Duration
	Proxy           string
	BreakerFailures uint32
	BreakerCooldown time.Duration
	Logger          *logrus.Logger
}

// Client is the resty-backed Streamer
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

var errServerStatus = errors.New("server error status")

// New creates a Client
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	hc := resty.New().SetLogger(logger)
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}
	if cfg.Proxy != "" {
		hc.SetProxy(cfg.Proxy)
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	cooldown := cfg.BreakerCooldown
	if cooldown == 0 {
		cooldown = defaultBreakerCooldown
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "chat-completions",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Client{http: hc, breaker: breaker, log: logger}
}

// Stream posts req and feeds the response body to onFragment. Server errors
// (5xx) and transport failures count against the breaker; an error returned
// by onFragment does not.
func (c *Client) Stream(ctx context.Context, req Request, onFragment FragmentFunc) (*Response, error) {
	var (
		resp    *Response
		stopErr error
	)

	_, err := c.breaker.Execute(func() (interface{}, error) {
		r, err := c.do(ctx, req, onFragment)
		var stop *stoppedError
		if errors.As(err, &stop) {
			stopErr = stop.err
			err = nil
		}
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, err
	}
	return resp, stopErr
}

// stoppedError carries the error a FragmentFunc returned
type stoppedError struct {
	err error
}

func (e *stoppedError) Error() string { return e.err.Error() }

func (e *stoppedError) Unwrap() error { return e.err }

// do performs the request and runs the read loop
func (c *Client) do(ctx context.Context, req Request, onFragment FragmentFunc) (*Response, error) {
	r, err := c.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetBody(req.Body).
		SetDoNotParseResponse(true).
		Post(req.URL)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", req.URL, err)
	}

	body := r.RawBody()
	defer body.Close()

	resp := &Response{
		StatusCode: r.StatusCode(),
		Status:     r.Status(),
		Header:     r.Header(),
	}
	keepBody := resp.StatusCode >= http.StatusBadRequest

	c.log.WithFields(logrus.Fields{
		"url":    req.URL,
		"status": resp.StatusCode,
	}).Debug("Stream opened")

	buf := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if keepBody {
				resp.Body = append(resp.Body, buf[:n]...)
			}
			if err := onFragment(string(buf[:n])); err != nil {
				return resp, &stoppedError{err: err}
			}
		}
		if errors.Is(readErr, io.EOF) {
			return resp, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}
	}
}
