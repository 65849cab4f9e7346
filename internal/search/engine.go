package search

import (
	"context"
	"time"

	"github.com/lumenforge/codeintel/internal/types"
)

// Engine routes a SearchQuery across its ordered layers, stopping at the
// first non-empty result unless the query's mode is Combined.
type Engine struct {
	layers []Layer
}

// NewEngine builds an engine over layers in cost order (cheapest first).
// Passing nil for a layer disables it, matching spec §4.5's "if the layer is
// enabled" routing clause.
func NewEngine(layers ...Layer) *Engine {
	var active []Layer
	for _, l := range layers {
		if l != nil {
			active = append(active, l)
		}
	}
	return &Engine{layers: active}
}

// Search runs q to completion (no streaming) and returns results with
// execution stats.
func (e *Engine) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, types.SearchStats, error) {
	start := time.Now()

	if q.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.Timeout)
		defer cancel()
	}

	var tried []types.SearchLayer
	var allResults [][]types.SearchResult

	for _, layer := range e.layers {
		if !layer.CanHandle(q) {
			continue
		}
		// The ripgrep fallback only participates once earlier layers have
		// come up empty, per §4.5's "used only when layers 1-3 return empty".
		if layer.Name() == types.LayerRipgrepFallback && len(tried) > 0 && hasAny(allResults) {
			break
		}

		select {
		case <-ctx.Done():
			return flatten(allResults), statsFor(start, tried, "cancelled"), nil
		default:
		}

		results, err := layer.Search(ctx, q)
		if err != nil {
			return flatten(allResults), statsFor(start, tried, "error"), err
		}

		tried = append(tried, layer.Name())
		if len(results) > 0 {
			allResults = append(allResults, results)
			if q.Mode != types.RoutingCombined {
				break
			}
		}
	}

	var out []types.SearchResult
	strategy := "first-match"
	if q.Mode == types.RoutingCombined {
		out = mergeDedupe(allResults)
		if len(allResults) > 1 {
			for i := range out {
				out[i].Layer = types.LayerCombined
			}
		}
		strategy = "combined"
	} else {
		out = flatten(allResults)
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	stats := statsFor(start, tried, strategy)
	stats.TotalResults = len(out)
	return out, stats, nil
}

// SearchStream runs q and delivers results on the returned channel, closing
// it after a final event with IsFinal set — including when cancellation cuts
// the run short, so callers always observe a terminal marker.
func (e *Engine) SearchStream(ctx context.Context, q types.SearchQuery) <-chan types.StreamEvent {
	ch := make(chan types.StreamEvent, 1)
	go func() {
		defer close(ch)
		results, _, err := e.Search(ctx, q)
		if err != nil {
			ch <- types.StreamEvent{IsFinal: true}
			return
		}
		ch <- types.StreamEvent{Results: results, IsFinal: true}
	}()
	return ch
}

func hasAny(sets [][]types.SearchResult) bool {
	for _, s := range sets {
		if len(s) > 0 {
			return true
		}
	}
	return false
}

func flatten(sets [][]types.SearchResult) []types.SearchResult {
	var out []types.SearchResult
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func statsFor(start time.Time, tried []types.SearchLayer, strategy string) types.SearchStats {
	return types.SearchStats{
		Duration:    time.Since(start),
		Strategy:    strategy,
		LayersTried: tried,
	}
}
