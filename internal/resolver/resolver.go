package resolver

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/geometry"
	"github.com/sells-group/languoid-cli/internal/languoid"
	"github.com/sells-group/languoid-cli/internal/spatial"
)

// ErrInvalidRank reports a rank filter outside {all, dialect, language, family}.
var ErrInvalidRank = eris.New("resolver: invalid rank filter")

// TableLoader provides the catalog snapshot. Satisfied by *languoid.Store.
type TableLoader interface {
	Load(ctx context.Context, forceRefresh bool) (*languoid.Table, error)
}

// Resolver orchestrates normalization, proximity filtering, and one-hop
// relation expansion into a candidate table.
type Resolver struct {
	loader TableLoader
}

// New creates a Resolver over the given catalog loader.
func New(loader TableLoader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve returns the catalog entries within bufferKM kilometers of loc,
// extended by their immediate parents and children, optionally filtered by
// rank. The rank filter is validated before any catalog or geometry work.
// An empty result is a valid output, not an error.
func (r *Resolver) Resolve(ctx context.Context, loc geometry.Location, bufferKM float64, rank string) ([]languoid.Node, error) {
	if !languoid.ValidFilterRank(rank) {
		return nil, eris.Wrapf(ErrInvalidRank, "resolver: rank %q (want one of all, dialect, language, family)", rank)
	}

	table, err := r.loader.Load(ctx, false)
	if err != nil {
		return nil, err
	}

	query, err := geometry.Normalize(loc)
	if err != nil {
		return nil, err
	}

	seed, err := spatial.Filter(query, bufferKM, table)
	if err != nil {
		return nil, err
	}

	extended := make(map[string]struct{}, len(seed))
	for id := range seed {
		extended[id] = struct{}{}
	}
	for id := range Children(seed, table) {
		extended[id] = struct{}{}
	}
	for id := range Parents(seed, table) {
		extended[id] = struct{}{}
	}

	candidates := table.Rows(extended)
	if rank != languoid.RankAll {
		filtered := candidates[:0]
		for _, n := range candidates {
			if n.Rank == rank {
				filtered = append(filtered, n)
			}
		}
		candidates = filtered
	}

	zap.L().Debug("resolver: candidates resolved",
		zap.Int("seed", len(seed)),
		zap.Int("extended", len(extended)),
		zap.Int("candidates", len(candidates)),
		zap.Float64("buffer_km", bufferKM),
		zap.String("rank", rank),
	)
	return candidates, nil
}

// Ancestry loads the catalog and walks parent links from id to the root.
func (r *Resolver) Ancestry(ctx context.Context, id string, maxHops int) ([]string, error) {
	table, err := r.loader.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	return Ancestry(id, table, maxHops)
}
