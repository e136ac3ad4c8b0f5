package hierarchy

import "strings"

const (
	// RankTeamScope is the minimum rank whose view scope extends beyond the
	// viewer's own record.
	RankTeamScope = 2
	// RankManagerial is the tier at and above which task assignment is refused.
	RankManagerial = 4
	// RankSelfManaged is the minimum rank allowed to act as its own manager.
	RankSelfManaged = 5
)

// RankTable maps designation labels to integer seniority ranks. Lookups are
// case-insensitive; any label outside the table ranks 0, the lowest tier.
// The table copies its input on construction and is never mutated afterwards,
// so one instance can be shared freely.
type RankTable struct {
	ranks map[string]int
}

func NewRankTable(ranks map[string]int) RankTable {
	normalized := make(map[string]int, len(ranks))
	for label, rank := range ranks {
		normalized[normalizeDesignation(label)] = rank
	}
	return RankTable{ranks: normalized}
}

// DefaultRankTable returns the built-in designation ladder.
func DefaultRankTable() RankTable {
	return NewRankTable(map[string]int{
		"SE1":        1,
		"SE2":        1,
		"SSE":        1,
		"TL":         1,
		"L1":         2,
		"L2":         3,
		"EM":         4,
		"CTO":        5,
		"ADMIN":      5,
		"SUPERADMIN": 6,
		"OWNER":      7,
	})
}

// RankOf returns the rank for a designation label, 0 when unknown or empty.
func (t RankTable) RankOf(designation string) int {
	return t.ranks[normalizeDesignation(designation)]
}

func normalizeDesignation(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
