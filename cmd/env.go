package main

import (
	"time"

	"github.com/sells-group/languoid-cli/internal/fetcher"
	"github.com/sells-group/languoid-cli/internal/languoid"
	"github.com/sells-group/languoid-cli/internal/resolver"
	"github.com/sells-group/languoid-cli/internal/verify"
	"github.com/sells-group/languoid-cli/pkg/wikipedia"
)

// Shared constructors for commands. Each command builds only what it needs;
// the catalog download is lazy, so constructing a store is cheap.

func newFetcher() *fetcher.Client {
	return fetcher.NewClient(fetcher.Options{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
	})
}

func newLanguoidStore(f *fetcher.Client) *languoid.Store {
	return languoid.NewStore(f, languoid.StoreOptions{
		ArchiveURL: cfg.Languoid.ArchiveURL,
		CacheDir:   cfg.Languoid.CacheDir,
	})
}

func newResolver(f *fetcher.Client) *resolver.Resolver {
	return resolver.New(newLanguoidStore(f))
}

func newVerifier(f *fetcher.Client) *verify.Client {
	return verify.NewClient(f, newLanguoidStore(f), verify.ClientOptions{
		BaseURL: cfg.Verify.TreeBaseURL,
		MaxHops: cfg.Verify.MaxHops,
	})
}

func newWikipedia(f *fetcher.Client) *wikipedia.Client {
	return wikipedia.NewClient(f, wikipedia.Options{
		APIURL:   cfg.Wikipedia.APIURL,
		MaxPages: cfg.Wikipedia.MaxPages,
	})
}
