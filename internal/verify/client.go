package verify

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/fetcher"
	"github.com/sells-group/languoid-cli/internal/resolver"
)

const (
	// DefaultBaseURL is the root of the authoritative record tree.
	DefaultBaseURL = "https://raw.githubusercontent.com/glottolog/glottolog/master/languoids/tree"

	// recordFilename is the fixed record file name at each tree path.
	recordFilename = "md.ini"
)

// ErrFetchFailed reports a transport failure other than a plain "not found"
// while fetching the authoritative record.
var ErrFetchFailed = eris.New("verify: record fetch failed")

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL string // defaults to DefaultBaseURL
	MaxHops int    // ancestry hop budget; defaults to resolver.DefaultMaxHops
}

// Client verifies a candidate name against the authoritative record of a
// catalog entry. Records are fetched per call and never cached.
type Client struct {
	http   *fetcher.Client
	loader resolver.TableLoader
	opts   ClientOptions
}

// NewClient creates a verification client.
func NewClient(httpClient *fetcher.Client, loader resolver.TableLoader, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.MaxHops <= 0 {
		opts.MaxHops = resolver.DefaultMaxHops
	}
	return &Client{http: httpClient, loader: loader, opts: opts}
}

// RecordURL joins the ancestry path onto the base address and appends the
// record filename.
func RecordURL(base string, path []string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(path, "/") + "/" + recordFilename
}

// Verify reports whether name matches the primary or any alternate name in
// the authoritative record for the entry id. Verification is best effort: a
// missing record, a malformed document, or an absent primary name are
// logged and reported as a non-match, not an error. Transport failures
// other than "not found" propagate.
func (c *Client) Verify(ctx context.Context, name, id string) (bool, error) {
	log := zap.L().With(zap.String("component", "verify"), zap.String("id", id))

	table, err := c.loader.Load(ctx, false)
	if err != nil {
		return false, err
	}

	path, err := resolver.Ancestry(id, table, c.opts.MaxHops)
	if err != nil {
		return false, err
	}
	if len(path) == 0 {
		log.Warn("verify: id not present in catalog, verification failed")
		return false, nil
	}

	url := RecordURL(c.opts.BaseURL, path)
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return false, eris.Wrapf(ErrFetchFailed, "verify: fetch %s: %v", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		log.Warn("verify: record not found, verification failed", zap.String("url", url))
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, eris.Wrapf(ErrFetchFailed, "verify: status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, eris.Wrapf(ErrFetchFailed, "verify: read %s: %v", url, err)
	}

	rec, err := ParseRecord(string(body))
	if err != nil {
		log.Warn("verify: malformed record, verification failed", zap.String("url", url), zap.Error(err))
		return false, nil
	}

	primary, err := rec.PrimaryName()
	if err != nil {
		log.Warn("verify: record missing primary name, verification failed", zap.String("url", url))
		return false, nil
	}

	matched := MatchName(name, primary, rec.AltNames())
	log.Debug("verify: name checked",
		zap.String("candidate", name),
		zap.String("primary", primary),
		zap.Bool("matched", matched),
	)
	return matched, nil
}
