// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docmark/internal/httputil"
	"github.com/pdiddy/docmark/pkg/types"
)

// maxPageBytes caps how much of a fetched page body is read.
const maxPageBytes = 20 << 20

// Fetcher retrieves the markup of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages over HTTP with browser-like headers, retrying on
// throttled responses and decoding the body to UTF-8.
type HTTPFetcher struct {
	Client *http.Client
	Config types.FetchConfig
	Log    zerolog.Logger
}

// NewHTTPFetcher builds a fetcher whose client uses cfg.Timeout.
func NewHTTPFetcher(cfg types.FetchConfig, log zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Log:    log,
	}
}

// Fetch GETs url and returns the decoded body. Non-200 responses fail with
// an "HTTP <code>: <status>" error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.Config.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.UserAgent)
	}
	if f.Config.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.Config.AcceptLanguage)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, f.Config.MaxRetries, f.Log)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	f.Log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("fetched page")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d: %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	text, enc, err := DecodeText(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	f.Log.Debug().Str("url", url).Str("encoding", enc).Int("bytes", len(body)).Msg("decoded page")
	return text, nil
}
