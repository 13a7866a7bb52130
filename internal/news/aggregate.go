package news

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"newsgenie/internal/logger"
	"newsgenie/internal/metrics"
)

// Source is one upstream adapter. Implementations never return an error:
// any network or parse failure is logged inside the adapter and surfaces
// as zero articles. The seen set is scoped to the single Fetch call and
// only guards against the same adapter emitting a URL twice.
type Source interface {
	Name() string
	Fetch(ctx context.Context, category string, seen *SeenSet) []Article
}

// Aggregator fans out to every source, merges the results, deduplicates
// and ranks them. All state is scoped to a single FetchAll call; nothing
// carries over between batches, so an article filtered in one refresh can
// reappear in the next if it is still live upstream.
type Aggregator struct {
	sources []Source // fixed order: API adapter first, then feeds
	cap     int
	workers int
}

func NewAggregator(sources []Source, cap, workers int) *Aggregator {
	if workers <= 0 {
		workers = 1
	}
	return &Aggregator{sources: sources, cap: cap, workers: workers}
}

// FetchAll runs one batch. Sources fetch concurrently, but the merge order
// is the fixed source order, so the dedup outcome does not depend on which
// source finished first. An all-sources-empty batch returns an empty slice,
// not an error. A cancelled context discards the whole batch.
func (ag *Aggregator) FetchAll(ctx context.Context, category string) ([]Article, error) {
	perSource := make([][]Article, len(ag.sources))

	// Each source gets its own seen set: sharing one across concurrent
	// adapters would let fetch timing decide which copy of a cross-source
	// duplicate survives. The Deduplicate pass below, over the fixed
	// merge order, is the only cross-source authority.
	var g errgroup.Group
	g.SetLimit(ag.workers)
	for i, src := range ag.sources {
		i, src := i, src
		g.Go(func() error {
			perSource[i] = src.Fetch(ctx, category, NewSeenSet())
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []Article
	for _, batch := range perSource {
		merged = append(merged, batch...)
	}

	if len(merged) == 0 {
		logger.Warn("no articles fetched from any source")
		return []Article{}, nil
	}

	unique := Deduplicate(merged)
	sortByRecency(unique)

	logger.Info("batch assembled",
		"fetched", len(merged),
		"unique", len(unique),
		"category", category)

	if len(unique) > ag.cap {
		unique = unique[:ag.cap]
	}
	return unique, nil
}

// Deduplicate drops repeated URLs and near-duplicate titles in arrival
// order; the first occurrence always wins. Articles without a URL are
// dropped outright.
func Deduplicate(articles []Article) []Article {
	seenURL := make(map[string]struct{}, len(articles))
	seenTitle := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		if _, dup := seenURL[a.URL]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		// An empty title has no near-duplicate key; only the URL check
		// applies to it.
		key := TitleKey(a.Title)
		if key != "" {
			if _, dup := seenTitle[key]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			seenTitle[key] = struct{}{}
		}
		seenURL[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

// sortByRecency orders newest first. The zero time sorts last, so entries
// whose source never provided a date end up at the bottom. Stable, so
// equal timestamps keep their merge order.
func sortByRecency(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}
