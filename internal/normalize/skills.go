// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

var skillName = regexp.MustCompile(`^[a-z0-9-]+$`)

// Skills parses the leaderboard text. After the "Leaderboard" marker every
// entry is three lines: rank, kebab-case skill name, owner/repo.
func (n *Normalizer) Skills(lines []SkillLine) []types.Item {
	src := types.SourceSkills
	capacity := n.cfg.Capacity(src)

	var items []types.Item
	started := false
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(string(lines[i]))
		if strings.Contains(line, "Leaderboard") {
			started = true
			continue
		}
		if !started {
			continue
		}
		rank, err := strconv.Atoi(line)
		if err != nil || rank <= 0 || i+1 >= len(lines) {
			continue
		}
		name := strings.TrimSpace(string(lines[i+1]))
		if !skillName.MatchString(name) {
			continue
		}
		owner := ""
		if i+2 < len(lines) {
			owner = strings.Trim(strings.TrimSpace(string(lines[i+2])), "/")
		}
		if owner == "" {
			n.skip(src, "missing owner", name)
			continue
		}
		i += 2

		url := fmt.Sprintf("https://skills.sh/%s/%s", owner, name)
		summary := fmt.Sprintf("Rank #%d on skills.sh. Owner: %s", rank, owner)
		if !n.admit(src, name, url, summary) {
			continue
		}
		score := SkillScore(rank)
		if n.belowMin(src, score, url) {
			continue
		}

		it := types.Item{
			Title:    name,
			URL:      url,
			Source:   src,
			Category: "Agent Skill",
			Score:    score,
			Summary:  summary,
			Tags:     []string{"AI Agent", "Skill"},
		}
		it.SetExtra(types.ExtraRank, rank)
		it.SetExtra(types.ExtraOwner, owner)
		items = append(items, it)

		if capacity > 0 && len(items) >= capacity {
			break
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExtraInt(types.ExtraRank) < items[j].ExtraInt(types.ExtraRank)
	})
	return items
}
