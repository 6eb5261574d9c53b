package giftfinder

import (
	"context"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

// gatherOutcome collects everything the fan-out produced: priced
// candidates that survived the budget filter, plus per-call errors so
// the engine can tell partial failure from total failure.
type gatherOutcome struct {
	priced     []pricedCandidate
	searches   int
	searchErrs []error
	offerErrs  []error
}

// gather runs all planned searches concurrently, then prices every
// distinct candidate concurrently. It always waits for the full set
// before returning; the draft must see everything that was gathered.
func (e *Engine) gather(ctx context.Context, queries []string, pc PromptContext) gatherOutcome {
	out := gatherOutcome{searches: len(queries)}
	market := pc.Constraints.Market

	var mu sync.Mutex
	type hit struct {
		candidate catalog.Candidate
		order     int
	}
	var hits []hit

	searchPool := pool.New().WithMaxGoroutines(e.opts.SearchConcurrency)
	for i, query := range queries {
		i, query := i, query
		searchPool.Go(func() {
			candidates, err := e.catalog.Search(ctx, query, market, e.opts.SearchSize)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.logger.Warn().Err(err).Str("query", query).Msg("catalog search failed")
				out.searchErrs = append(out.searchErrs, err)
				return
			}
			for j, c := range candidates {
				// order keeps the final candidate list deterministic
				// regardless of which search finished first.
				hits = append(hits, hit{candidate: c, order: i*1000 + j})
			}
		})
	}
	searchPool.Wait()

	sort.Slice(hits, func(a, b int) bool { return hits[a].order < hits[b].order })

	// De-duplicate across queries and drop anything already shown in a
	// prior turn; there is no point pricing those.
	shown := pc.ShownIDs()
	seen := make(map[string]bool)
	var unique []hit
	for _, h := range hits {
		id := h.candidate.ProductID
		if seen[id] || shown[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, h)
	}

	priced := make([]*pricedCandidate, len(unique))
	offerPool := pool.New().WithMaxGoroutines(e.opts.OfferConcurrency)
	for i, h := range unique {
		i, h := i, h
		offerPool.Go(func() {
			quote, err := e.catalog.Offers(ctx, h.candidate.ProductID, market)
			if err != nil {
				e.logger.Warn().Err(err).Str("product_id", h.candidate.ProductID).Msg("offer lookup failed")
				mu.Lock()
				out.offerErrs = append(out.offerErrs, err)
				mu.Unlock()
				return
			}
			if quote == nil {
				// No current offers: unsellable right now, drop it.
				return
			}
			if !withinBudget(*quote, pc.Constraints.MinPrice, pc.Constraints.MaxPrice) {
				return
			}
			priced[i] = &pricedCandidate{Candidate: h.candidate, Quote: *quote}
		})
	}
	offerPool.Wait()

	for _, p := range priced {
		if p != nil {
			out.priced = append(out.priced, *p)
		}
	}

	e.logger.Debug().
		Int("queries", len(queries)).
		Int("candidates", len(unique)).
		Int("priced", len(out.priced)).
		Int("search_errors", len(out.searchErrs)).
		Int("offer_errors", len(out.offerErrs)).
		Msg("gather complete")

	return out
}
