package languoid

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/fetcher"
	"github.com/sells-group/languoid-cli/internal/geometry"
)

const (
	// DefaultArchiveURL is the catalog export: a ZIP archive holding one CSV.
	DefaultArchiveURL = "https://cdstar.eva.mpg.de//bitstreams/EAEA0-2198-D710-AA36-0/glottolog_languoid.csv.zip"

	// archiveCSVName is the fixed name of the CSV inside the archive and of
	// the local cache file.
	archiveCSVName = "languoid.csv"

	// cacheAppDir is the per-application directory under the OS cache dir.
	cacheAppDir = "languoid-cli"
)

// ErrDataUnavailable reports that the catalog could not be obtained: the
// archive host is unreachable or the expected file is missing from the
// archive. A partial table is never returned.
var ErrDataUnavailable = eris.New("languoid: catalog unavailable")

// StoreOptions configures a Store.
type StoreOptions struct {
	ArchiveURL string // defaults to DefaultArchiveURL
	CacheDir   string // defaults to os.UserCacheDir()/languoid-cli
}

// Store downloads, caches, and parses the catalog. The parsed table is held
// in memory and treated as immutable; concurrent readers may share it as
// long as nobody forces a refresh mid-read.
type Store struct {
	mu      sync.Mutex
	opts    StoreOptions
	fetcher *fetcher.Client
	table   *Table
}

// NewStore creates a Store backed by the given HTTP client.
func NewStore(f *fetcher.Client, opts StoreOptions) *Store {
	if opts.ArchiveURL == "" {
		opts.ArchiveURL = DefaultArchiveURL
	}
	return &Store{opts: opts, fetcher: f}
}

// Load returns the catalog table, downloading and caching it on first use.
// With forceRefresh the archive is re-downloaded and the cache file is
// atomically replaced, so concurrent readers of the old file never observe a
// partial write.
func (s *Store) Load(ctx context.Context, forceRefresh bool) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil && !forceRefresh {
		return s.table, nil
	}

	path, err := s.cachePath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr != nil || forceRefresh {
		if err := s.download(ctx, path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrDataUnavailable, "languoid: open cache file: %v", err)
	}
	defer f.Close() //nolint:errcheck

	nodes, err := parseCSV(ctx, f)
	if err != nil {
		return nil, err
	}

	s.table = NewTable(nodes)
	zap.L().Info("languoid: catalog loaded",
		zap.Int("nodes", s.table.Len()),
		zap.String("cache", path),
	)
	return s.table, nil
}

// CachePath returns the location of the cached catalog CSV.
func (s *Store) CachePath() (string, error) { return s.cachePath() }

func (s *Store) cachePath() (string, error) {
	dir := s.opts.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", eris.Wrap(err, "languoid: resolve user cache dir")
		}
		dir = filepath.Join(base, cacheAppDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "languoid: create cache dir")
	}
	return filepath.Join(dir, archiveCSVName), nil
}

// download fetches the archive, extracts the CSV, and moves it into place
// with a rename so the cache file is replaced atomically.
func (s *Store) download(ctx context.Context, dest string) error {
	log := zap.L().With(zap.String("component", "languoid.store"))
	log.Info("downloading catalog archive", zap.String("url", s.opts.ArchiveURL))

	tmpDir, err := os.MkdirTemp("", "languoid-*")
	if err != nil {
		return eris.Wrap(err, "languoid: create temp dir")
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck

	zipPath := filepath.Join(tmpDir, "catalog.zip")
	if _, err := s.fetcher.DownloadToFile(ctx, s.opts.ArchiveURL, zipPath); err != nil {
		return eris.Wrapf(ErrDataUnavailable, "languoid: download archive: %v", err)
	}

	extracted, err := fetcher.ExtractZIPFile(zipPath, archiveCSVName, tmpDir)
	if err != nil {
		return eris.Wrapf(ErrDataUnavailable, "languoid: %q missing from archive %s: %v",
			archiveCSVName, s.opts.ArchiveURL, err)
	}

	if err := replaceFile(extracted, dest); err != nil {
		return err
	}

	log.Info("catalog cached", zap.String("path", dest))
	return nil
}

// replaceFile moves src over dest, staging in dest's directory so the final
// rename stays on one filesystem.
func replaceFile(src, dest string) error {
	staged := dest + ".tmp"
	data, err := os.ReadFile(src)
	if err != nil {
		return eris.Wrap(err, "languoid: read extracted file")
	}
	if err := os.WriteFile(staged, data, 0o644); err != nil {
		return eris.Wrap(err, "languoid: stage cache file")
	}
	if err := os.Rename(staged, dest); err != nil {
		return eris.Wrap(err, "languoid: replace cache file")
	}
	return nil
}

// parseCSV reads catalog rows. Required columns: id, parent_id, name, level.
// Longitude/latitude are optional per row; unparsable or blank coordinates
// leave the node without a point.
func parseCSV(ctx context.Context, f *os.File) ([]Node, error) {
	var (
		nodes    []Node
		idx      map[string]int
		indexErr error
	)

	err := fetcher.ForEachCSVRow(ctx, f, fetcher.CSVOptions{}, func(header, record []string) error {
		if idx == nil {
			idx = make(map[string]int, 6)
			for _, col := range []string{"id", "parent_id", "name", "level", "longitude", "latitude"} {
				idx[col] = fetcher.ColumnIndex(header, col)
			}
			for _, col := range []string{"id", "parent_id", "name", "level"} {
				if idx[col] < 0 {
					indexErr = eris.Wrapf(ErrDataUnavailable, "languoid: column %q missing from catalog", col)
					return indexErr
				}
			}
		}

		field := func(col string) string {
			i := idx[col]
			if i < 0 || i >= len(record) {
				return ""
			}
			return record[i]
		}

		n := Node{
			ID:       field("id"),
			ParentID: field("parent_id"),
			Name:     field("name"),
			Rank:     field("level"),
		}
		if n.ID == "" {
			return nil
		}

		lon, lonErr := strconv.ParseFloat(field("longitude"), 64)
		lat, latErr := strconv.ParseFloat(field("latitude"), 64)
		if lonErr == nil && latErr == nil {
			n.Point = geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(geometry.SRID)
		}

		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		if indexErr != nil {
			return nil, indexErr
		}
		return nil, eris.Wrapf(ErrDataUnavailable, "languoid: parse catalog: %v", err)
	}

	return nodes, nil
}
