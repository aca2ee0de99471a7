package languoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNodes() []Node {
	return []Node{
		{ID: "root0000", Name: "Root", Rank: RankFamily},
		{ID: "chld0000", ParentID: "root0000", Name: "ChildA", Rank: RankLanguage},
		{ID: "chld0001", ParentID: "root0000", Name: "ChildB", Rank: RankLanguage},
		{ID: "gran0000", ParentID: "chld0000", Name: "Grandchild", Rank: RankDialect},
	}
}

func TestTableGet(t *testing.T) {
	table := NewTable(sampleNodes())

	n, ok := table.Get("chld0000")
	require.True(t, ok)
	assert.Equal(t, "ChildA", n.Name)

	_, ok = table.Get("missing0")
	assert.False(t, ok)
}

func TestTableChildIDs(t *testing.T) {
	table := NewTable(sampleNodes())

	assert.Equal(t, []string{"chld0000", "chld0001"}, table.ChildIDs("root0000"))
	assert.Equal(t, []string{"gran0000"}, table.ChildIDs("chld0000"))
	assert.Empty(t, table.ChildIDs("gran0000"))
}

func TestTableRowsPreserveOrder(t *testing.T) {
	table := NewTable(sampleNodes())

	rows := table.Rows(map[string]struct{}{
		"gran0000": {},
		"root0000": {},
	})

	// Row order follows the underlying snapshot regardless of set order.
	require.Len(t, rows, 2)
	assert.Equal(t, "root0000", rows[0].ID)
	assert.Equal(t, "gran0000", rows[1].ID)
}

func TestTableDuplicateIDsLastWins(t *testing.T) {
	table := NewTable([]Node{
		{ID: "dupe0000", Name: "First", Rank: RankLanguage},
		{ID: "dupe0000", Name: "Second", Rank: RankLanguage},
	})

	n, ok := table.Get("dupe0000")
	require.True(t, ok)
	assert.Equal(t, "Second", n.Name)
}

func TestValidFilterRank(t *testing.T) {
	for _, rank := range FilterRanks {
		assert.True(t, ValidFilterRank(rank), rank)
	}
	assert.False(t, ValidFilterRank("dialectt"))
	assert.False(t, ValidFilterRank(""))
	assert.False(t, ValidFilterRank("Language"))
}
