// Package scraper provides functionality to fetch ATP pages and derive their URLs
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("tennis-scraper/scraper")

// DefaultUserAgent is sent with every request
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// PageFetcher returns the body of a page
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError is returned when a page could not be downloaded
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("error fetching %s: non-200 status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPOptions configures an HTTPFetcher
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// CloudflareBypass wraps the transport so requests look like a browser
	// TLS client.
	CloudflareBypass bool
	// SnapshotDir, if set, receives a copy of every fetched page.
	SnapshotDir string
	Logger      *zap.SugaredLogger
}

// HTTPFetcher downloads pages with resty
type HTTPFetcher struct {
	client      *resty.Client
	snapshotDir string
	logger      *zap.SugaredLogger
}

// NewHTTPFetcher creates a fetcher with a browser user agent and a timeout.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &HTTPFetcher{
		client:      client,
		snapshotDir: opts.SnapshotDir,
		logger:      opts.Logger,
	}
}

// Fetch downloads the HTML content from a URL and returns it as a string
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	f.logger.Debugw("Fetching URL", "url", url)
	start := time.Now()

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		fetchesTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", &FetchError{URL: url, Err: err}
	}

	f.logger.Debugw("HTTP response", "url", url, "status", res.StatusCode(), "bytes", len(res.Body()))
	if res.StatusCode() != http.StatusOK {
		fetchesTotal.WithLabelValues("status").Inc()
		span.SetStatus(codes.Error, res.Status())
		return "", &FetchError{URL: url, StatusCode: res.StatusCode()}
	}
	fetchesTotal.WithLabelValues("ok").Inc()

	body := res.String()
	if f.snapshotDir != "" {
		name := filepath.Join(f.snapshotDir, SnapshotName(url))
		if err := SaveContentToFile(name, body); err != nil {
			f.logger.Warnw("Error saving page snapshot", "file", name, "error", err)
		}
	}

	return body, nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// SnapshotName turns a URL into a flat file name.
func SnapshotName(rawURL string) string {
	name := rawURL
	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.Trim(name, "_") + ".html"
}
