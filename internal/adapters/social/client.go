// Package social provides a twitterapi.io client for yellowboard batch jobs
package social

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.twitterapi.io"
	defaultTimeout   = 40 * time.Second
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond

	// pageDelay is a courtesy pause between cursor pages
	pageDelay = time.Second
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal twitterapi.io REST client with retry and
// cursor pagination helpers
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("social"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Do issues a GET with the API key header, retrying transient and rate
// limited responses
func (c *Client) Do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "social new request failed")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-API-Key", c.opts.APIKey)

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "social do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("social transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("social http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusTooManyRequests:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "social rate limited")
			}
			wait := retryAfter(resp.Header, c.backoff(attempts))
			c.log.Warn().Dur("sleep", wait).Msg("social rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "social transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("social transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	if max := int64(30 * time.Second / time.Millisecond); ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
