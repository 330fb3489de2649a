// Package ranking assembles scored subjects into dense, deterministic
// rankings and slices them into pages.
package ranking

import (
	"sort"

	"github.com/okian/agora/internal/domain/types"
)

// Scored pairs a subject with its computed breakdown.
type Scored struct {
	SubjectID string
	Breakdown types.ScoreBreakdown
}

// Page is one window of an assembled ranking.
type Page struct {
	Entries []types.RankedEntry
	Total   int
	HasMore bool
}

// Assemble sorts subjects descending by the selected dimension and assigns
// dense 1-based ranks. Equal scores order by ascending subject id so the
// result is reproducible for identical input. prev maps subject id to the
// rank held in the previous snapshot; entries absent from prev get a zero
// delta.
func Assemble(scored []Scored, dim types.ScoreType, prev map[string]int) []types.RankedEntry {
	ordered := make([]Scored, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i].Breakdown.Dimension(dim), ordered[j].Breakdown.Dimension(dim)
		if si != sj {
			return si > sj
		}
		return ordered[i].SubjectID < ordered[j].SubjectID
	})

	entries := make([]types.RankedEntry, len(ordered))
	for i, s := range ordered {
		rank := i + 1
		delta := 0
		if prevRank, ok := prev[s.SubjectID]; ok {
			delta = prevRank - rank
		}
		entries[i] = types.RankedEntry{
			Rank:      rank,
			SubjectID: s.SubjectID,
			Breakdown: s.Breakdown,
			RankDelta: delta,
		}
	}
	return entries
}

// Slice returns the requested page of an assembled ranking. Pages are
// 1-based; a page past the end yields an empty entry list.
func Slice(entries []types.RankedEntry, page, pageSize int) (Page, error) {
	if page < 1 || pageSize < 1 {
		return Page{}, types.ErrInvalidPage
	}
	skip := (page - 1) * pageSize
	end := skip + pageSize
	if skip > len(entries) {
		skip = len(entries)
	}
	if end > len(entries) {
		end = len(entries)
	}
	return Page{
		Entries: entries[skip:end],
		Total:   len(entries),
		HasMore: end < len(entries),
	}, nil
}

// Locate finds a subject's own entry with a full scan of the assembled set,
// independent of any page window.
func Locate(entries []types.RankedEntry, subjectID string) (types.RankedEntry, error) {
	for _, e := range entries {
		if e.SubjectID == subjectID {
			return e, nil
		}
	}
	return types.RankedEntry{}, ErrSubjectNotRanked
}

// Ranks extracts the subject-to-rank map of an assembled set, used as the
// prev argument of the next Assemble call.
func Ranks(entries []types.RankedEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.SubjectID] = e.Rank
	}
	return m
}
