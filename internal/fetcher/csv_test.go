package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachCSVRow(t *testing.T) {
	input := "id,name,level\nfren1234,French,language\nstan1290,,dialect\n"

	var rows [][]string
	err := ForEachCSVRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(header, record []string) error {
		assert.Equal(t, []string{"id", "name", "level"}, header)
		rows = append(rows, record)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"fren1234", "French", "language"}, rows[0])
	assert.Equal(t, []string{"stan1290", "", "dialect"}, rows[1])
}

func TestForEachCSVRowRaggedRows(t *testing.T) {
	input := "a,b\n1,2,3\n4\n"

	var count int
	err := ForEachCSVRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(header, record []string) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestForEachCSVRowEmptyInput(t *testing.T) {
	err := ForEachCSVRow(context.Background(), strings.NewReader(""), CSVOptions{}, func(header, record []string) error {
		t.Fatal("callback should not run")
		return nil
	})
	assert.Error(t, err)
}

func TestForEachCSVRowStopsOnCallbackError(t *testing.T) {
	input := "a\n1\n2\n3\n"
	sentinel := eris.New("stop")

	var count int
	err := ForEachCSVRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(header, record []string) error {
		count++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, count)
}

func TestColumnIndex(t *testing.T) {
	header := []string{"id", "name", "level"}
	assert.Equal(t, 0, ColumnIndex(header, "id"))
	assert.Equal(t, 2, ColumnIndex(header, "level"))
	assert.Equal(t, -1, ColumnIndex(header, "missing"))
}
