package engine

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// perftTableCapacity bounds the node-count table shared by one Perft call.
const perftTableCapacity = 1 << 20

// Perft counts the leaf nodes of the legal move tree of depth plies below g.
// Root moves are searched on up to the configured number of workers; the
// first context error stops the search.
func Perft(ctx context.Context, rb *StandardRulebook, g *Game, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	var roots []*Game
	for u := range rb.AllUpdates(g) {
		roots = append(roots, u.Game)
	}
	if depth == 1 {
		return uint64(len(roots)), nil
	}

	table := hashing.NewThreadSafeTable(perftTableCapacity)
	var total atomic.Uint64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(rb.cfg.Workers)
	for _, root := range roots {
		eg.Go(func() error {
			n, err := perft(ctx, rb, table, root, depth-1)
			if err != nil {
				return err
			}
			total.Add(n)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	if ce := rb.logger.Check(zap.DebugLevel, "perft"); ce != nil {
		ce.Write(
			zap.Stringer("id", g.ID()),
			zap.Int("depth", depth),
			zap.Uint64("nodes", total.Load()),
			zap.Int("table_entries", table.Len()),
			zap.Uint64("table_hits", table.Hits()))
	}
	return total.Load(), nil
}

func perft(ctx context.Context, rb *StandardRulebook, table *hashing.ThreadSafeTable, g *Game, depth int) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var key uint64
	if depth > 1 {
		key = rb.PositionKey(g)
		if n, ok := table.Lookup(key, depth); ok {
			return n, nil
		}
	}

	var nodes uint64
	for u := range rb.AllUpdates(g) {
		if depth == 1 {
			nodes++
			continue
		}
		n, err := perft(ctx, rb, table, u.Game, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	if depth > 1 {
		table.Store(key, depth, nodes)
	}
	return nodes, nil
}
