// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectISO6391 returns the two-letter code of text's language, or "" when
// the sample is too short or ambiguous.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	letters := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 6 {
		return ""
	}

	lang, ok := getDetector().DetectLanguageOf(sample)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Chinese,
				lingua.Japanese,
				lingua.Korean,
				lingua.French,
				lingua.German,
				lingua.Spanish,
				lingua.Russian,
			).
			Build()
	})
	return detector
}
