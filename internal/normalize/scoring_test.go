// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklisted(t *testing.T) {
	kws := []string{"nft", "Crypto"}

	assert.True(t, Blacklisted("New NFT rendering model", "", kws))
	assert.True(t, Blacklisted("Rendering", "built on crypto rails", kws))
	assert.False(t, Blacklisted("Gaussian splatting", "fast", kws))
	assert.False(t, Blacklisted("anything", "", nil))
}

func TestKeywordMatches(t *testing.T) {
	kws := []string{"GPU", "NeRF", "diffusion", ""}

	assert.Equal(t, 0, KeywordMatches(kws, "nothing here"))
	assert.Equal(t, 2, KeywordMatches(kws, "A GPU NeRF", "with nerf again"))
	assert.Equal(t, 3, KeywordMatches(kws, "gpu", "Diffusion on NERF"))
}

func TestScores(t *testing.T) {
	assert.Equal(t, 150, TrendingScore(120, 3))
	assert.Equal(t, 100, OfficialScore(true))
	assert.Equal(t, 50, OfficialScore(false))
	assert.Equal(t, 99, SkillScore(1))
	assert.Equal(t, 85, SkillScore(15))
	assert.Equal(t, 0, SkillScore(250))
}

func TestParseVotes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		terms   []string
		want    int
	}{
		{"explicit field", "<p>Great tool</p> Comments: 4, Votes: 321", nil, 321},
		{"tag term", "no numbers", []string{"Tech", "88 votes"}, 88},
		{"generic phrase", "Loved by 42 upvotes already", nil, 42},
		{"field beats generic", "12 votes ... Votes: 7", nil, 7},
		{"unparsable", "just text", []string{"AI"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVotes(tt.content, tt.terms))
		})
	}
}

func TestPerCategoryLimit(t *testing.T) {
	assert.Equal(t, 10, PerCategoryLimit(30, 3))
	assert.Equal(t, 30, PerCategoryLimit(60, 2))
	assert.Equal(t, 10, PerCategoryLimit(30, 10))
	assert.Equal(t, 30, PerCategoryLimit(30, 0))
}
