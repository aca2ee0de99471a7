// Package verify cross-checks a candidate name against the authoritative
// record fetched for a catalog entry's ancestry path.
package verify

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	ini "gopkg.in/ini.v1"
)

// altNamesPrefix marks record sections holding newline-delimited alternate
// name lists.
const altNamesPrefix = "altnames"

// ErrMissingField reports an authoritative record without a primary name.
var ErrMissingField = eris.New("verify: record missing core.name")

// Record is a parsed authoritative record: section name to key/value pairs.
type Record map[string]map[string]string

// ParseRecord parses the sectioned key/value record text. The source files
// are written for Python's configparser, so multiline values continue on
// indented lines and %-interpolation is disabled.
func ParseRecord(text string) (Record, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		IgnoreInlineComment:        true,
	}, []byte(text))
	if err != nil {
		return nil, eris.Wrap(err, "verify: parse record")
	}

	rec := make(Record)
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		rec[sec.Name()] = sec.KeysHash()
	}
	return rec, nil
}

// PrimaryName extracts the record's core.name field.
func (r Record) PrimaryName() (string, error) {
	name, ok := r["core"]["name"]
	if !ok || name == "" {
		return "", ErrMissingField
	}
	return name, nil
}

// AltNames collects every alternate-name list in the record: each key of a
// section whose name begins with the alternate-names prefix maps to its
// value split on newlines, with empty entries dropped.
func (r Record) AltNames() map[string][]string {
	alts := make(map[string][]string)
	for section, keys := range r {
		if !strings.HasPrefix(section, altNamesPrefix) {
			continue
		}
		for key, value := range keys {
			var names []string
			for _, v := range strings.Split(value, "\n") {
				if v != "" {
					names = append(names, v)
				}
			}
			if len(names) > 0 {
				alts[key] = names
			}
		}
	}
	return alts
}

// MatchName reports whether candidate equals the primary name or any
// alternate name under normalization.
func MatchName(candidate, primary string, alts map[string][]string) bool {
	want := normalizeName(candidate)
	if normalizeName(primary) == want {
		return true
	}
	for _, names := range alts {
		for _, alt := range names {
			if normalizeName(alt) == want {
				return true
			}
		}
	}
	return false
}

// normalizeName lower-cases and trims leading whitespace only. Trailing
// whitespace stays significant.
func normalizeName(s string) string {
	return strings.TrimLeftFunc(strings.ToLower(s), unicode.IsSpace)
}
