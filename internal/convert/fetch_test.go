// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmark/internal/httputil"
	"github.com/pdiddy/docmark/pkg/types"
)

func testFetchConfig() types.FetchConfig {
	cfg := types.DefaultConfig().Fetch
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestHTTPFetcher(t *testing.T) {
	var gotUA, gotLang string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<h1>Fetched</h1><p>body</p>"))
		case "/legacy":
			w.Header().Set("Content-Type", "text/html; charset=euc-kr")
			_, _ = w.Write(eucKR(t, "<p>한국어</p>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	f := NewHTTPFetcher(testFetchConfig(), zerolog.Nop())

	page, err := f.Fetch(context.Background(), ts.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Fetched</h1><p>body</p>", page)
	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Equal(t, "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7", gotLang)

	page, err = f.Fetch(context.Background(), ts.URL+"/legacy")
	require.NoError(t, err)
	assert.Equal(t, "<p>한국어</p>", page)

	_, err = f.Fetch(context.Background(), ts.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404: Not Found")
}

func TestHTTPFetcherRetriesThrottling(t *testing.T) {
	saved := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = saved })

	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<p>second try</p>"))
	}))
	t.Cleanup(ts.Close)

	page, err := NewHTTPFetcher(testFetchConfig(), zerolog.Nop()).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>second try</p>", page)
	assert.Equal(t, 2, calls)
}

func TestConvertURLEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>x</title></head><body><h1>News</h1><ul><li>one</li><li>two</li></ul></body></html>"))
	}))
	t.Cleanup(ts.Close)

	c := New(WithFetcher(NewHTTPFetcher(testFetchConfig(), zerolog.Nop())))
	md, err := c.Convert(context.Background(), types.TextInput(ts.URL+"/article"), types.KindURL)
	require.NoError(t, err)
	assert.Equal(t, "# News\n\n- one\n- two", md)
}
