// Package scraper turns a web page into a quiz: fetch, extract, classify,
// then generate through the cached completion path.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	UserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	FetchTimeout = 15 * time.Second
	MaxBodyBytes = 10 << 20
)

type Fetcher interface {
	FetchHTML(ctx context.Context, rawURL string) (string, error)
}

type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

type FetcherOption func(*HTTPFetcher)

func WithMaxBytes(n int64) FetcherOption {
	return func(f *HTTPFetcher) { f.maxBytes = n }
}

func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) { f.client = c }
}

func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout:   FetchTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxBytes: MaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsValidURL accepts absolute http(s) URLs with a host.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (f *HTTPFetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	log := config.WithContext(ctx).WithField("url", rawURL)

	if !IsValidURL(rawURL) {
		return "", apperror.Newf(apperror.InvalidInput, "invalid URL: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", apperror.Wrap(apperror.InvalidInput, "build request", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Request failed")
		return "", apperror.Wrap(apperror.FetchFailed, "fetch "+rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		log.WithError(err).Error("Request failed")
		return "", apperror.Wrap(apperror.FetchFailed, "fetch "+rawURL, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		log.WithError(err).Error("Reading response body failed")
		return "", apperror.Wrap(apperror.FetchFailed, "read "+rawURL, err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", apperror.Newf(apperror.ContentTooLarge, "content too large (>%d bytes)", f.maxBytes)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
		log.WithField("content_type", ct).Warn("Content type is not HTML")
	}
	return string(body), nil
}
