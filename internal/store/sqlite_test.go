package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/languoid-cli/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	st, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "dsn")
	assert.Error(t, err)
}

func TestRecordAndListRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	verified := true
	run := &model.GuessRun{
		Language:   "French",
		Method:     model.MethodWikipedia,
		Glottocode: "stan1290",
		Verified:   &verified,
		Candidates: 0,
	}
	require.NoError(t, st.RecordRun(ctx, run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	require.NoError(t, st.RecordRun(ctx, &model.GuessRun{
		Language:   "Gallo",
		Method:     model.MethodLLM,
		Candidates: 12,
	}))

	runs, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	for _, got := range runs {
		switch got.Language {
		case "French":
			assert.Equal(t, "stan1290", got.Glottocode)
			require.NotNil(t, got.Verified)
			assert.True(t, *got.Verified)
		case "Gallo":
			assert.Empty(t, got.Glottocode)
			assert.Nil(t, got.Verified)
			assert.Equal(t, 12, got.Candidates)
		default:
			t.Fatalf("unexpected language %q", got.Language)
		}
	}
}

func TestListRunsFilterByLanguage(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, lang := range []string{"French", "French", "German"} {
		require.NoError(t, st.RecordRun(ctx, &model.GuessRun{
			Language: lang,
			Method:   model.MethodWikipedia,
		}))
	}

	runs, err := st.ListRuns(ctx, RunFilter{Language: "French"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = st.ListRuns(ctx, RunFilter{Language: "Basque"})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestListRunsPagination(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.RecordRun(ctx, &model.GuessRun{
			Language: "French",
			Method:   model.MethodLLM,
		}))
	}

	page, err := st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := st.ListRuns(ctx, RunFilter{Limit: 10, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
