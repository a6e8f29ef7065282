package tmdb

import (
	"net/http"
	"strings"
	"time"

	"github.com/s0up4200/marquee/metrics"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLanguage sets the language sent with every query.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// WithImageBaseURL sets the host prefix poster paths are appended to.
func WithImageBaseURL(imageBaseURL string) Option {
	return func(c *Client) {
		if imageBaseURL != "" {
			c.imageBaseURL = strings.TrimRight(imageBaseURL, "/")
		}
	}
}

// WithWebBaseURL sets the site that per-movie pages live on.
func WithWebBaseURL(webBaseURL string) Option {
	return func(c *Client) {
		if webBaseURL != "" {
			c.webBaseURL = strings.TrimRight(webBaseURL, "/")
		}
	}
}

// WithMetrics records every call on the given recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = recorder
	}
}
