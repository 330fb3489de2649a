package matching

import (
	"sort"

	"github.com/okian/agora/internal/domain/types"
)

// Default suggestion grouping configuration.
const (
	defaultGroupCap  = 5
	defaultMaxGroups = 6
)

// Suggest clusters already-matched candidates into named discovery buckets.
// A bucket exists per viewer interest tag shared by at least one candidate;
// each bucket keeps at most groupCap members in match order. Buckets order
// by size descending, then tag ascending. Candidates may appear in several
// buckets when they share several tags.
func (e *Engine) Suggest(viewer Profile, matches []types.MatchCandidate, profiles map[string]Profile, groupCap int) []types.SuggestionGroup {
	if groupCap <= 0 {
		groupCap = defaultGroupCap
	}

	byTag := make(map[string][]types.MatchCandidate)
	for _, tag := range viewer.Interests {
		for _, mc := range matches {
			p, ok := profiles[mc.SubjectID]
			if !ok {
				continue
			}
			if !hasTag(p.Interests, tag) {
				continue
			}
			if len(byTag[tag]) < groupCap {
				byTag[tag] = append(byTag[tag], mc)
			}
		}
	}

	groups := make([]types.SuggestionGroup, 0, len(byTag))
	for tag, members := range byTag {
		groups = append(groups, types.SuggestionGroup{
			Name:    "Also into " + tag,
			Tag:     tag,
			Members: members,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Members) != len(groups[j].Members) {
			return len(groups[i].Members) > len(groups[j].Members)
		}
		return groups[i].Tag < groups[j].Tag
	})
	if len(groups) > defaultMaxGroups {
		groups = groups[:defaultMaxGroups]
	}
	return groups
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
