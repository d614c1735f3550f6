package utils

import (
	"net/http"
	"time"

	"github.com/PuerkitoBio/rehttp"
)

type HTTPRetryConfig struct {
	MaxRetries      int
	TemporaryErrors bool
	Statuses        []int
	Methods         []string
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	Timeout         time.Duration
}

// DefaultHTTPRetryConfig retries idempotent reads on network errors and
// gateway failures.
func DefaultHTTPRetryConfig() HTTPRetryConfig {
	return HTTPRetryConfig{
		MaxRetries:      3,
		TemporaryErrors: true,
		Statuses: []int{
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		Methods:   []string{http.MethodGet, http.MethodHead},
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  2 * time.Second,
		Timeout:   15 * time.Second,
	}
}

func NewRetryingClient(conf HTTPRetryConfig) *http.Client {
	statusRetries := []rehttp.RetryFn{}
	if len(conf.Statuses) > 0 {
		statusRetries = append(statusRetries, rehttp.RetryStatuses(conf.Statuses...))
	} else {
		conf.TemporaryErrors = true
	}
	if conf.TemporaryErrors {
		statusRetries = append(statusRetries, rehttp.RetryTemporaryErr())
	}

	retryFns := []rehttp.RetryFn{rehttp.RetryAny(statusRetries...)}
	if len(conf.Methods) > 0 {
		retryFns = append(retryFns, rehttp.RetryHTTPMethods(conf.Methods...))
	}
	if conf.MaxRetries > 0 {
		retryFns = append(retryFns, rehttp.RetryMaxRetries(conf.MaxRetries))
	}

	return &http.Client{
		Timeout: conf.Timeout,
		Transport: rehttp.NewTransport(nil,
			rehttp.RetryAll(retryFns...),
			rehttp.ExpJitterDelay(conf.BaseDelay, conf.MaxDelay)),
	}
}
