package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/languoid-cli/internal/languoid"
)

func candidates() []languoid.Node {
	return []languoid.Node{
		{ID: "fren1234", Name: "French", Rank: languoid.RankLanguage},
		{ID: "germ1234", Name: "German", Rank: languoid.RankLanguage},
	}
}

func TestBuildTask(t *testing.T) {
	task, err := BuildTask("french", candidates())
	require.NoError(t, err)

	assert.Contains(t, task, `"name":"French"`)
	assert.Contains(t, task, `"glottocode":"fren1234"`)
	assert.Contains(t, task, "<candidates>")
	assert.Contains(t, task, "</candidates>")
	// The language name is capitalized for the prompt.
	assert.Contains(t, task, "language named French")
	assert.NotContains(t, task, "language named french")
}

func TestBuildTaskEmptyCandidates(t *testing.T) {
	task, err := BuildTask("French", nil)
	require.NoError(t, err)
	assert.Contains(t, task, "<candidates>[]</candidates>")
}

func TestSanityCheck(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		want  bool
	}{
		{name: "candidate id", guess: "fren1234", want: true},
		{name: "other candidate id", guess: "germ1234", want: true},
		{name: "empty guess is acceptable", guess: "", want: true},
		{name: "hallucinated id", guess: "made1234", want: false},
		{name: "name instead of id", guess: "French", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanityCheck(tt.guess, candidates()))
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "french", want: "French"},
		{in: "FRENCH", want: "French"},
		{in: "  french  ", want: "French"},
		{in: "swiss german", want: "Swiss german"},
		{in: "", want: ""},
		{in: "éwé", want: "Éwé"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in))
	}
}
