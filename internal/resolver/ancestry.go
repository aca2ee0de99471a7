package resolver

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/languoid-cli/internal/languoid"
)

// DefaultMaxHops bounds the ancestry walk. Real catalog trees are a handful
// of levels deep; exceeding the budget means the parent links loop.
const DefaultMaxHops = 64

// ErrCycleSuspected reports that an ancestry walk exceeded its hop budget.
// The catalog does not guarantee acyclic parent links; without the budget a
// cycle would make the walk loop forever.
var ErrCycleSuspected = eris.New("resolver: ancestry hop budget exceeded, parent cycle suspected")

// Ancestry walks parent links from id upward and returns the path ordered
// root-most first, ending at id itself. The walk stops when a row is missing
// or its parent id is empty; an unknown starting id yields an empty path.
func Ancestry(id string, t *languoid.Table, maxHops int) ([]string, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	var path []string
	current := id
	for hops := 0; current != ""; hops++ {
		if hops >= maxHops {
			return nil, eris.Wrapf(ErrCycleSuspected, "resolver: walking up from %q", id)
		}
		n, ok := t.Get(current)
		if !ok {
			break
		}
		path = append(path, n.ID)
		current = n.ParentID
	}

	// Reverse in place: the walk collected leaf-to-root.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
