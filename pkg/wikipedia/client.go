// Package wikipedia guesses a glottocode for a language name from the
// infoboxes of matching Wikipedia articles.
package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/languoid-cli/internal/fetcher"
)

// DefaultAPIURL is the MediaWiki action API endpoint.
const DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

// defaultMaxPages caps how many search hits get their infobox fetched.
const defaultMaxPages = 5

// Options configures a Client.
type Options struct {
	APIURL   string // defaults to DefaultAPIURL
	MaxPages int    // defaults to 5
}

// Client queries the MediaWiki API.
type Client struct {
	http *fetcher.Client
	opts Options
}

// NewClient creates a Wikipedia client backed by the given HTTP client.
func NewClient(httpClient *fetcher.Client, opts Options) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	return &Client{http: httpClient, opts: opts}
}

// Page is one search hit, optionally augmented with infobox data.
type Page struct {
	Name      string
	Title     string
	Relevance int // search result index; lower is more relevant
	Infobox   map[string]string
	Codes     []Code
}

// Code is a glottocode extracted from an infobox.
type Code struct {
	Code    string
	Primary bool
}

// Search queries for pages about the named language. Hits about programming
// languages and plural "languages of" pages are dropped; the rest keep their
// original relevance order. When the exact query returns nothing the search
// retries with diacritics folded away.
func (c *Client) Search(ctx context.Context, language string) ([]Page, error) {
	titles, err := c.search(ctx, language+" language")
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		if folded := FoldDiacritics(language); folded != language {
			titles, err = c.search(ctx, folded+" language")
			if err != nil {
				return nil, err
			}
		}
	}

	var pages []Page
	for i, title := range titles {
		lower := strings.ToLower(title)
		if strings.Contains(lower, "programming language") {
			continue
		}
		if !strings.Contains(lower, "language") || strings.Contains(lower, "languages") {
			continue
		}
		pages = append(pages, Page{Name: language, Title: title, Relevance: i})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Relevance < pages[j].Relevance })
	return pages, nil
}

// searchResponse mirrors the action=query list=search JSON shape.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
	}
	body, err := c.http.Download(ctx, c.opts.APIURL+"?"+params.Encode())
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: search")
	}
	defer body.Close() //nolint:errcheck

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, eris.Wrap(err, "wikipedia: decode search response")
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// parseResponse mirrors the action=parse prop=wikitext JSON shape.
type parseResponse struct {
	Parse struct {
		Wikitext struct {
			Content string `json:"*"`
		} `json:"wikitext"`
	} `json:"parse"`
}

// FetchInfoboxes retrieves and parses the infobox of each page, a few pages
// at a time. Pages without an infobox are dropped.
func (c *Client) FetchInfoboxes(ctx context.Context, pages []Page) ([]Page, error) {
	if len(pages) > c.opts.MaxPages {
		pages = pages[:c.opts.MaxPages]
	}

	results := make([]map[string]string, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range pages {
		g.Go(func() error {
			infobox, err := c.fetchInfobox(gctx, p.Title)
			if err != nil {
				// Best effort per page, matching the search relevance model.
				zap.L().Warn("wikipedia: no infobox",
					zap.String("title", p.Title),
					zap.Error(err),
				)
				return nil
			}
			results[i] = infobox
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Page
	for i, p := range pages {
		if len(results[i]) == 0 {
			continue
		}
		p.Infobox = results[i]
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) fetchInfobox(ctx context.Context, title string) (map[string]string, error) {
	params := url.Values{
		"action": {"parse"},
		"page":   {title},
		"prop":   {"wikitext"},
		"format": {"json"},
	}
	body, err := c.http.Download(ctx, c.opts.APIURL+"?"+params.Encode())
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: fetch page")
	}
	defer body.Close() //nolint:errcheck

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: read page")
	}

	var resp parseResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, eris.Wrap(err, "wikipedia: decode page response")
	}
	infobox := ParseInfobox(resp.Parse.Wikitext.Content)
	if len(infobox) == 0 {
		return nil, eris.Errorf("wikipedia: page %q has no infobox", title)
	}
	return infobox, nil
}

// ParseInfobox extracts top-level "| key = value" parameters from wikitext.
func ParseInfobox(wikitext string) map[string]string {
	infobox := make(map[string]string)
	for _, line := range strings.Split(wikitext, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		key, value, found := strings.Cut(line[1:], "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			infobox[key] = value
		}
	}
	return infobox
}

// FoldDiacritics strips combining marks so "Yuracaré" searches as "Yuracare".
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
