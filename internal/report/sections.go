// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// style describes how one section renders: its heading, banner, which text
// becomes the card summary (and its rune budget), and the card meta line.
type style struct {
	heading string
	alt     string
	banner  string
	note    string
	budget  int
	plain   bool // summary shown as-is, never translated
	text    func(types.Item) string
	meta    func(types.Item) (left, right string)
}

func summaryText(it types.Item) string { return it.Summary }
func titleText(it types.Item) string   { return it.Title }

var styles = map[types.SectionKey]style{
	types.SectionGitHub: {
		heading: "🔥 GitHub Trending",
		alt:     "GitHub Trending",
		banner:  "github.png",
		budget:  60,
		text:    summaryText,
		meta: func(it types.Item) (string, string) {
			lang := it.ExtraString(types.ExtraLanguage)
			if lang == "" {
				lang = "Unknown"
			}
			return "🔤 " + lang, fmt.Sprintf("⭐ +%d", it.ExtraInt(types.ExtraTodayStars))
		},
	},
	types.SectionSkills: {
		heading: "🛠️ Trending Skills for Agents",
		alt:     "Trending Skills",
		banner:  "skills.png",
		note:    "Top Agent Skills from skills.sh",
		plain:   true,
		text:    summaryText,
		meta: func(it types.Item) (string, string) {
			return "🤖 Skill", fmt.Sprintf("#%d", it.ExtraInt(types.ExtraRank))
		},
	},
	types.SectionHuggingFace: {
		heading: "🤗 Hugging Face Papers",
		alt:     "Hugging Face",
		banner:  "Hugging%20Face.png",
		note:    "Daily Top Papers from hf.co/papers",
		budget:  80,
		text:    summaryText,
		meta: func(it types.Item) (string, string) {
			return "📄 Paper", fmt.Sprintf("👍 %d", it.ExtraInt(types.ExtraUpvotes))
		},
	},
	types.SectionProductHunt: {
		heading: "🚀 Product Hunt Daily",
		alt:     "Product Hunt",
		banner:  "product%20hunt.png",
		budget:  80,
		text:    summaryText,
		meta: func(it types.Item) (string, string) {
			return "🆕 Product", fmt.Sprintf("▲ %d", it.Score)
		},
	},
	types.SectionCG: {
		heading: "🎨 CG & Graphics",
		alt:     "CG",
		banner:  "CG.png",
		note:    "Covers: Unreal Engine | Three.js | Blender | Houdini | Unity | Godot | NVIDIA",
		budget:  80,
		text:    titleText,
		meta: func(it types.Item) (string, string) {
			var marks []string
			if it.IsOfficial() {
				marks = append(marks, "🏛️ Official")
			}
			if it.IsAIRelated() {
				marks = append(marks, "🤖 AI")
			}
			left := "🔥 Hot"
			if len(marks) > 0 {
				left = strings.Join(marks, " ")
			}
			return left, fmt.Sprintf("🔥 %d", it.Score)
		},
	},
	types.SectionBluesky: {
		heading: "🦋 Bluesky",
		budget:  80,
		text:    titleText,
		meta: func(types.Item) (string, string) {
			return "👤 KOL", "[post]"
		},
	},
	types.SectionReddit: {
		heading: "🔴 Reddit Discussions",
		alt:     "Reddit",
		banner:  "reddit.png",
		budget:  80,
		text:    titleText,
		meta: func(it types.Item) (string, string) {
			return "r/" + it.ExtraString(types.ExtraSubreddit), fmt.Sprintf("🔥 %d", it.Score)
		},
	},
	types.SectionHackerNews: {
		heading: "💬 Hacker News",
		alt:     "Hacker News",
		banner:  "Hacker%20News.png",
		budget:  80,
		text:    titleText,
		meta: func(it types.Item) (string, string) {
			return fmt.Sprintf("💬 %d comments", it.Comments), fmt.Sprintf("Points: %d", it.Score)
		},
	},
	types.SectionArxiv: {
		heading: "🎓 Research (arXiv)",
		alt:     "arXiv",
		banner:  "arXiv.png",
		budget:  100,
		text:    titleText,
		meta: func(it types.Item) (string, string) {
			return "✍️ " + shortAuthors(it.Authors), "📄 PDF"
		},
	},
}
