// Package guess produces a catalog-id guess for a language name from a
// candidate set, via an LLM or any other producer.
package guess

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/languoid-cli/internal/languoid"
)

// Guesser guesses the catalog id for a language name given a candidate set.
// An empty guess means no plausible match; it is not an error.
type Guesser interface {
	Guess(ctx context.Context, language string, candidates []languoid.Node) (string, error)
}

// role is the system prompt for the LLM guesser.
const role = "You are an experienced linguist at a prestigious university. " +
	"You work very carefully and do not want to make mistakes, as they might harm your reputation."

// candidateEntry is the per-candidate shape serialized into the prompt.
type candidateEntry struct {
	Name       string `json:"name"`
	Glottocode string `json:"glottocode"`
}

// BuildTask renders the matching task over the candidate list.
func BuildTask(language string, candidates []languoid.Node) (string, error) {
	entries := make([]candidateEntry, 0, len(candidates))
	for _, n := range candidates {
		entries = append(entries, candidateEntry{Name: n.Name, Glottocode: n.ID})
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return "", eris.Wrap(err, "guess: marshal candidates")
	}

	lang := Capitalize(language)
	return fmt.Sprintf(
		"<candidates> is a JSON file containing information about languages and their glottocodes. "+
			"Each entry in <candidates> has attributes name, which is the name of a language, "+
			"and glottocode, which is a unique identifier for the language published by Glottolog. "+
			"<candidates>%s</candidates> "+
			"Find the correct glottocode for the language named %s in <candidates>. "+
			"First, search for an exact match for %s in the name attribute of <candidates>. "+
			"If no exact match is found, look for alternative spellings for %s. "+
			"Then, try to match any alternative spelling to the entries in <candidates>. "+
			"If no suitable match is found, return an empty result. "+
			"Return the Glottocode as plain text without additional text or comments.",
		payload, lang, lang, lang,
	), nil
}

// SanityCheck reports whether a guess is acceptable: either empty (no match
// found) or one of the candidate ids.
func SanityCheck(guess string, candidates []languoid.Node) bool {
	if guess == "" {
		return true
	}
	for _, n := range candidates {
		if n.ID == guess {
			return true
		}
	}
	return false
}

// Capitalize trims the name and upper-cases its first rune, lower-casing the
// rest, matching how catalog names are written.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r := []rune(lower)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
