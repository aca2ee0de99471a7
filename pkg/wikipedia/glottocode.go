package wikipedia

import (
	"context"
	"strings"
)

// glottoPrefix marks infobox parameters carrying glottocodes.
const glottoPrefix = "glotto"

// primaryKeys are the infobox parameters holding a page's primary glottocode.
var primaryKeys = map[string]bool{"glotto": true, "glotto1": true}

// ExtractCodes collects glottocode entries from a page's infobox.
func ExtractCodes(infobox map[string]string) []Code {
	var codes []Code
	for key, value := range infobox {
		lower := strings.ToLower(key)
		if !strings.HasPrefix(lower, glottoPrefix) || value == "" {
			continue
		}
		// Parameters like glottorefname carry names, not codes.
		if strings.HasPrefix(lower, "glottoref") {
			continue
		}
		codes = append(codes, Code{Code: value, Primary: primaryKeys[lower]})
	}
	return codes
}

// GuessGlottocode runs the full pipeline: search, infobox retrieval, code
// extraction, and selection of the most relevant code. Returns an empty
// string when nothing is found; that is not an error.
func (c *Client) GuessGlottocode(ctx context.Context, language string, onlyPrimary bool) (string, error) {
	language = capitalize(language)

	pages, err := c.Search(ctx, language)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", nil
	}

	pages, err = c.FetchInfoboxes(ctx, pages)
	if err != nil {
		return "", err
	}

	for i := range pages {
		pages[i].Codes = ExtractCodes(pages[i].Infobox)
	}

	for _, p := range pages {
		for _, code := range p.Codes {
			if code.Primary || !onlyPrimary {
				return code.Code, nil
			}
		}
	}
	return "", nil
}

// capitalize trims the name and title-cases its first rune the way article
// titles are written.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
