// Package resolver finds candidate catalog entries for a location and walks
// the hierarchy for verification.
package resolver

import (
	"github.com/sells-group/languoid-cli/internal/languoid"
)

// Children returns the ids of nodes whose parent id is in the given set.
// One hop only; no recursion to grandchildren.
func Children(ids map[string]struct{}, t *languoid.Table) map[string]struct{} {
	out := make(map[string]struct{})
	for id := range ids {
		for _, child := range t.ChildIDs(id) {
			out[child] = struct{}{}
		}
	}
	return out
}

// Parents returns the parent ids referenced by nodes in the given set.
// Absent and dangling parent references are dropped silently. One hop only.
func Parents(ids map[string]struct{}, t *languoid.Table) map[string]struct{} {
	out := make(map[string]struct{})
	for id := range ids {
		n, ok := t.Get(id)
		if !ok || n.ParentID == "" {
			continue
		}
		if _, ok := t.Get(n.ParentID); !ok {
			continue
		}
		out[n.ParentID] = struct{}{}
	}
	return out
}
