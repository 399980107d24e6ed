// Package httpclient provides an http.Client whose traffic is logged through zap.
package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"github.com/alimzhanovlr/rsbackend/logger"
)

// LoggingRoundTripper logs every outbound request and its outcome.
type LoggingRoundTripper struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLoggingRoundTripper wraps next; a nil next uses http.DefaultTransport.
func NewLoggingRoundTripper(next http.RoundTripper, log *logger.Logger) *LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingRoundTripper{next: next, logger: log}
}

// NewClient returns an http.Client using a LoggingRoundTripper.
func NewClient(log *logger.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewLoggingRoundTripper(nil, log),
		Timeout:   timeout,
	}
}

// RoundTrip implements http.RoundTripper.
func (l *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := l.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.logger.Warn("HTTP request failed",
			logger.String("method", req.Method),
			logger.String("url", sanitizeURL(req.URL)),
			logger.Any("duration", duration),
			logger.Error(err),
		)
		return nil, err
	}

	l.logger.Debug("HTTP request",
		logger.String("method", req.Method),
		logger.String("url", sanitizeURL(req.URL)),
		logger.Int("status", resp.StatusCode),
		logger.Any("duration", duration),
	)

	return resp, nil
}

// sanitizeURL drops credentials and query parameters, which may carry tokens.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	cp := *u
	if cp.User != nil {
		cp.User = url.User("REDACTED")
	}
	if cp.RawQuery != "" {
		cp.RawQuery = "REDACTED"
	}
	return cp.String()
}
