package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `[core]
name = French
level = language
latitude = 48.0

[altnames]
hhbib_lgcode =
	Francais
	francese

[altnames-multitree]
fren1234 = French (Standard)

[sources]
glottolog = some-ref
`

func TestParseRecordSections(t *testing.T) {
	rec, err := ParseRecord(sampleRecord)
	require.NoError(t, err)

	assert.Contains(t, rec, "core")
	assert.Contains(t, rec, "altnames")
	assert.Contains(t, rec, "sources")
	assert.Equal(t, "language", rec["core"]["level"])
}

func TestPrimaryName(t *testing.T) {
	rec, err := ParseRecord(sampleRecord)
	require.NoError(t, err)

	name, err := rec.PrimaryName()
	require.NoError(t, err)
	assert.Equal(t, "French", name)
}

func TestPrimaryNameMissing(t *testing.T) {
	rec, err := ParseRecord("[core]\nlevel = language\n")
	require.NoError(t, err)

	_, err = rec.PrimaryName()
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestAltNamesMultiline(t *testing.T) {
	rec, err := ParseRecord(sampleRecord)
	require.NoError(t, err)

	alts := rec.AltNames()
	require.Contains(t, alts, "hhbib_lgcode")
	assert.Contains(t, alts["hhbib_lgcode"], "Francais")
	assert.Contains(t, alts["hhbib_lgcode"], "francese")

	// Sections whose name merely starts with the prefix count too.
	require.Contains(t, alts, "fren1234")
	assert.Equal(t, []string{"French (Standard)"}, alts["fren1234"])
}

func TestAltNamesIgnoreOtherSections(t *testing.T) {
	rec, err := ParseRecord(sampleRecord)
	require.NoError(t, err)

	alts := rec.AltNames()
	assert.NotContains(t, alts, "glottolog")
}

func TestMatchName(t *testing.T) {
	alts := map[string][]string{
		"hhbib_lgcode": {"Francais", "francese"},
	}

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "exact primary", candidate: "French", want: true},
		{name: "case-insensitive", candidate: "fRENCH", want: true},
		{name: "leading whitespace ignored", candidate: "  French", want: true},
		{name: "trailing whitespace significant", candidate: "French ", want: false},
		{name: "alternate name", candidate: "Francais", want: true},
		{name: "alternate case-insensitive", candidate: "FRANCESE", want: true},
		{name: "no match", candidate: "German", want: false},
		{name: "empty candidate", candidate: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchName(tt.candidate, "French", alts)
			assert.Equal(t, tt.want, got)
		})
	}
}
