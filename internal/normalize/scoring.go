// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Blacklisted reports whether title or summary contains any exclusion
// keyword, case-insensitively.
func Blacklisted(title, summary string, keywords []string) bool {
	t := strings.ToLower(title)
	s := strings.ToLower(summary)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(t, kw) || strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// KeywordMatches counts the keywords that occur in any of texts. Each
// keyword counts once regardless of how many texts contain it.
func KeywordMatches(keywords []string, texts ...string) int {
	lowered := make([]string, len(texts))
	for i, t := range texts {
		lowered[i] = strings.ToLower(t)
	}

	n := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, t := range lowered {
			if strings.Contains(t, kw) {
				n++
				break
			}
		}
	}
	return n
}

// ContainsAny reports whether any keyword occurs in text.
func ContainsAny(text string, keywords []string) bool {
	return KeywordMatches(keywords, text) > 0
}

// TrendingScore weights keyword relevance against the daily star delta.
func TrendingScore(todayStars, matches int) int {
	return todayStars + 10*matches
}

// OfficialScore is the two-tier blog score.
func OfficialScore(aiRelated bool) int {
	if aiRelated {
		return 100
	}
	return 50
}

// SkillScore maps a leaderboard rank to a descending score; rank 1 scores 99.
func SkillScore(rank int) int {
	if s := 100 - rank; s > 0 {
		return s
	}
	return 0
}

var (
	votesField   = regexp.MustCompile(`Votes:\s*(\d+)`)
	votesTag     = regexp.MustCompile(`(?i)(\d+)\s*votes?`)
	votesGeneric = regexp.MustCompile(`(?i)(\d+)\s*(?:votes?|upvotes?)`)
)

// ParseVotes extracts a vote count from a product-feed entry. It tries an
// explicit "Votes: N" field in content, then each tag term, then a generic
// "N votes" phrase in content. Unparsable input scores 0.
func ParseVotes(content string, tagTerms []string) int {
	if n := firstInt(votesField, content); n > 0 {
		return n
	}
	for _, term := range tagTerms {
		if n := firstInt(votesTag, term); n > 0 {
			return n
		}
	}
	return firstInt(votesGeneric, content)
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
