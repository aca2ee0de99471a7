// Package languoid loads and indexes the language catalog: one node per
// entry, linked into a forest by parent ids and optionally anchored to a
// geographic point.
package languoid

import "github.com/twpayne/go-geom"

// Catalog ranks. The catalog's own rank column is a closed set; unknown
// values are carried verbatim and simply never match a rank filter.
const (
	RankDialect  = "dialect"
	RankLanguage = "language"
	RankFamily   = "family"

	// RankAll is a filter value only, never a node rank.
	RankAll = "all"
)

// FilterRanks lists the accepted values for a rank filter.
var FilterRanks = []string{RankAll, RankDialect, RankLanguage, RankFamily}

// ValidFilterRank reports whether rank is an accepted filter value.
func ValidFilterRank(rank string) bool {
	for _, r := range FilterRanks {
		if rank == r {
			return true
		}
	}
	return false
}

// Node is one catalog entry.
type Node struct {
	ID       string      `json:"id"`
	ParentID string      `json:"parent_id,omitempty"` // empty for roots; may dangle
	Name     string      `json:"name"`
	Rank     string      `json:"rank"`
	Point    *geom.Point `json:"-"` // nil when the entry has no coordinates
}

// HasPoint reports whether the node is anchored to a geographic point.
func (n Node) HasPoint() bool { return n.Point != nil }
