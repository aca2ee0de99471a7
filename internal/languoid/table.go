package languoid

// Table is the loaded catalog: an immutable row set with id and parent-id
// indexes. The parent index is built once per load so one-hop expansions
// never rescan the full row set. A Table is safe for concurrent reads.
type Table struct {
	nodes    []Node
	byID     map[string]int
	byParent map[string][]string
}

// NewTable builds a Table from rows. Later rows win on duplicate ids.
func NewTable(nodes []Node) *Table {
	t := &Table{
		nodes:    nodes,
		byID:     make(map[string]int, len(nodes)),
		byParent: make(map[string][]string),
	}
	for i, n := range nodes {
		t.byID[n.ID] = i
		if n.ParentID != "" {
			t.byParent[n.ParentID] = append(t.byParent[n.ParentID], n.ID)
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.nodes) }

// Nodes returns the full row set. Callers must not mutate it.
func (t *Table) Nodes() []Node { return t.nodes }

// Get returns the node with the given id.
func (t *Table) Get(id string) (Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// ChildIDs returns the ids of nodes whose parent id equals id.
func (t *Table) ChildIDs(id string) []string { return t.byParent[id] }

// Rows returns the nodes whose ids are in the given set. Order follows the
// underlying row set, so results are deterministic for a given snapshot.
func (t *Table) Rows(ids map[string]struct{}) []Node {
	rows := make([]Node, 0, len(ids))
	for _, n := range t.nodes {
		if _, ok := ids[n.ID]; ok {
			rows = append(rows, n)
		}
	}
	return rows
}
