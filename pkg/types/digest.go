// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SectionKey names one group of the rendered report.
type SectionKey string

const (
	SectionGitHub      SectionKey = "github"
	SectionSkills      SectionKey = "skills"
	SectionHuggingFace SectionKey = "huggingface"
	SectionProductHunt SectionKey = "producthunt"
	SectionCG          SectionKey = "cg"
	SectionBluesky     SectionKey = "bluesky"
	SectionReddit      SectionKey = "reddit"
	SectionHackerNews  SectionKey = "hackernews"
	SectionArxiv       SectionKey = "arxiv"
)

// SectionOrder is the fixed render order of report sections.
var SectionOrder = []SectionKey{
	SectionGitHub,
	SectionSkills,
	SectionHuggingFace,
	SectionProductHunt,
	SectionCG,
	SectionBluesky,
	SectionReddit,
	SectionHackerNews,
	SectionArxiv,
}

// SectionFor maps a source to the section its items render in. Official
// blog items share the CG section.
func SectionFor(s Source) SectionKey {
	switch s {
	case SourceRedditCG, SourceOfficial:
		return SectionCG
	}
	return SectionKey(s)
}

// Section is one non-empty group of a digest.
type Section struct {
	Key   SectionKey `json:"key" yaml:"key"`
	Items []Item     `json:"items" yaml:"items"`
}

// SourceReport records how one source fared during a run.
type SourceReport struct {
	Source Source `json:"source" yaml:"source"`
	Count  int    `json:"count" yaml:"count"`

	// Error is the failure message when the source was unavailable.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Digest is the output of one pipeline run.
type Digest struct {
	// Date is the report date (YYYY-MM-DD).
	Date string `json:"date" yaml:"date"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Sections are the non-empty groups in SectionOrder.
	Sections []Section `json:"sections" yaml:"sections"`

	Sources []SourceReport `json:"sources" yaml:"sources"`

	// Duplicates is the number of items dropped by URL deduplication.
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}

// Section returns the items of key, or nil.
func (d *Digest) Section(key SectionKey) []Item {
	for _, s := range d.Sections {
		if s.Key == key {
			return s.Items
		}
	}
	return nil
}

// Total returns the number of items across all sections.
func (d *Digest) Total() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}
