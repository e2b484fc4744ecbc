// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

func init() {
	AttemptDelay = time.Millisecond
	httputil.RetryBaseDelay = time.Millisecond
}

func newTestGoogle(endpoint string, attempts int) *Google {
	client := httputil.NewClient(types.HTTPConfig{Timeout: 5 * time.Second, MaxRetries: 1}, zerolog.Nop())
	g := NewGoogle(types.TranslationConfig{Endpoint: endpoint, TargetLang: "zh-CN", MaxAttempts: attempts}, client, zerolog.Nop())
	g.detect = func(string) string { return "en" }
	return g
}

func TestGoogleTranslate(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "zh-CN", r.URL.Query().Get("tl"))
		w.Write([]byte(`[[["你好，","Hello, ",null,null,10],["世界","world",null,null,10]],null,"en"]`))
	}))
	defer ts.Close()

	g := newTestGoogle(ts.URL, 3)
	got := g.Translate(context.Background(), "Hello,   world https://example.com/x", 80)

	assert.Equal(t, "你好，世界", got)
	assert.Equal(t, "Hello, world", gotQuery)
}

func TestGoogleTranslate_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(`garbage`))
			return
		}
		w.Write([]byte(`[[["好","good"]]]`))
	}))
	defer ts.Close()

	got := newTestGoogle(ts.URL, 3).Translate(context.Background(), "good", 80)
	assert.Equal(t, "好", got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGoogleTranslate_FallbackAfterExhaustion(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	long := strings.Repeat("word ", 40)
	got := newTestGoogle(ts.URL, 3).Translate(context.Background(), long, 30)

	assert.True(t, strings.HasPrefix(got, FallbackMarker))
	assert.LessOrEqual(t, len([]rune(got)), 30)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGoogleTranslate_RateLimitedSendsOneRequestPerAttempt(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	// The shared fetch client retries 429 on its own; the translator must not
	// stack those retries on top of its attempts.
	client := httputil.NewClient(types.HTTPConfig{Timeout: 5 * time.Second, MaxRetries: 3}, zerolog.Nop())
	g := NewGoogle(types.TranslationConfig{Endpoint: ts.URL, TargetLang: "zh-CN", MaxAttempts: 5}, client, zerolog.Nop())
	g.detect = func(string) string { return "en" }

	got := g.Translate(context.Background(), "Hello world from the feed", 80)

	assert.Equal(t, FallbackMarker+"Hello world from the feed", got)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
	assert.Equal(t, 3, client.MaxRetries)
}

func TestGoogleTranslate_SkipsTargetLanguage(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	g := newTestGoogle(ts.URL, 3)
	g.detect = func(string) string { return "zh" }

	got := g.Translate(context.Background(), "已经是中文的摘要", 80)
	assert.Equal(t, "已经是中文的摘要", got)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGoogleTranslate_Empty(t *testing.T) {
	g := newTestGoogle("http://127.0.0.1:0", 1)
	assert.Empty(t, g.Translate(context.Background(), "  https://only.example/url  ", 80))
}

func TestPassthrough(t *testing.T) {
	got := Passthrough{}.Translate(context.Background(), "a  b\n c", 80)
	assert.Equal(t, "a b c", got)
	assert.Equal(t, "abcd...", Passthrough{}.Translate(context.Background(), "abcdefghij", 7))
}

func TestParseGTX(t *testing.T) {
	_, err := parseGTX([]byte(`{}`))
	require.Error(t, err)

	_, err = parseGTX([]byte(`[]`))
	require.Error(t, err)

	got, err := parseGTX([]byte(`[[["a"],[1],["b"]]]`))
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestBaseLang(t *testing.T) {
	assert.Equal(t, "zh", baseLang("zh-CN"))
	assert.Equal(t, "pt", baseLang("pt_BR"))
	assert.Equal(t, "en", baseLang("EN"))
}
