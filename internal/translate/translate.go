// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate produces display summaries in the report language.
//
// Translation never fails the run: when the upstream service is exhausted
// the original text is returned with an "[EN] " marker.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// FallbackMarker prefixes untranslated text.
const FallbackMarker = "[EN] "

// maxInputRunes bounds how much text is sent upstream.
const maxInputRunes = 500

// AttemptDelay is the base wait between attempts; attempt n waits
// n×AttemptDelay plus jitter. Tests override it.
var AttemptDelay = time.Second

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Translator turns text into a display summary of at most maxRunes runes.
type Translator interface {
	Translate(ctx context.Context, text string, maxRunes int) string
}

// Passthrough truncates without translating. It backs --no-summary.
type Passthrough struct{}

// Translate returns text cut to maxRunes.
func (Passthrough) Translate(_ context.Context, text string, maxRunes int) string {
	return normalize.Truncate(prepare(text), maxRunes)
}

// Google calls the public gtx translation endpoint.
type Google struct {
	Client      *httputil.Client
	Endpoint    string
	TargetLang  string
	MaxAttempts int
	Log         zerolog.Logger

	detect func(text string) string
}

// NewGoogle builds a Google translator from the translation settings. The
// translator's own attempt loop replaces the client's transport retries.
func NewGoogle(cfg types.TranslationConfig, client *httputil.Client, log zerolog.Logger) *Google {
	g := &Google{
		Client:      client.WithoutRetries(),
		Endpoint:    cfg.Endpoint,
		TargetLang:  cfg.TargetLang,
		MaxAttempts: cfg.MaxAttempts,
		Log:         log,
		detect:      DetectISO6391,
	}
	if g.MaxAttempts <= 0 {
		g.MaxAttempts = 5
	}
	return g
}

// Translate returns the translated text, the original when it is already in
// the target language, or the marked original when every attempt failed.
func (g *Google) Translate(ctx context.Context, text string, maxRunes int) string {
	clean := prepare(text)
	if clean == "" {
		return ""
	}
	if g.detect != nil && g.detect(clean) == baseLang(g.TargetLang) {
		return normalize.Truncate(clean, maxRunes)
	}

	var lastErr error
attempts:
	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				break attempts
			case <-time.After(time.Duration(attempt)*AttemptDelay + jitter()):
			}
		}

		out, err := g.call(ctx, clean)
		if err == nil && out != "" {
			return normalize.Truncate(out, maxRunes)
		}
		if err == nil {
			err = fmt.Errorf("empty translation")
		}
		lastErr = err
	}

	g.Log.Warn().Err(lastErr).Int("attempts", g.MaxAttempts).Msg("translation failed, using original text")
	return FallbackMarker + normalize.Truncate(clean, maxRunes-len([]rune(FallbackMarker)))
}

func (g *Google) call(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", g.TargetLang)
	q.Set("dt", "t")
	q.Set("q", text)

	body, err := g.Client.Get(ctx, g.Endpoint+"?"+q.Encode())
	if err != nil {
		return "", err
	}
	return parseGTX(body)
}

// parseGTX joins the translated segments of a gtx response, which looks
// like [[["segment","source",...],...],null,"en",...].
func parseGTX(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decoding translation: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	segments, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translation shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// prepare strips URLs, collapses whitespace and bounds the input length.
func prepare(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}
	return text
}

func baseLang(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

func jitter() time.Duration {
	if AttemptDelay <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(AttemptDelay)/2 + 1))
}
