package checks

import (
	"context"
	"errors"
	"fmt"

	"item-sync/core/reconcile"

	"golang.org/x/sync/errgroup"
)

// DanglingPair is a stored pair whose item is gone on at least one side.
type DanglingPair struct {
	IDA      string `json:"id_a"`
	IDB      string `json:"id_b"`
	MissingA bool   `json:"missing_a"`
	MissingB bool   `json:"missing_b"`
}

// PairReport is the result of a pair check.
type PairReport struct {
	Checked  int            `json:"checked"`
	Dangling []DanglingPair `json:"dangling"`
}

// CheckPairs looks up both items of every pair, with at most workers lookups
// in flight. Any error other than not-found aborts the check.
func CheckPairs(ctx context.Context, pairs []reconcile.Pair, a, b reconcile.SideAdapter, workers int) (*PairReport, error) {
	results := make([]DanglingPair, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range pairs {
		g.Go(func() error {
			missingA, err := absent(gctx, a, p.A)
			if err != nil {
				return fmt.Errorf("side a item %s: %w", p.A, err)
			}
			missingB, err := absent(gctx, b, p.B)
			if err != nil {
				return fmt.Errorf("side b item %s: %w", p.B, err)
			}
			results[i] = DanglingPair{IDA: p.A, IDB: p.B, MissingA: missingA, MissingB: missingB}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &PairReport{Checked: len(pairs), Dangling: []DanglingPair{}}
	for _, r := range results {
		if r.MissingA || r.MissingB {
			report.Dangling = append(report.Dangling, r)
		}
	}
	return report, nil
}

// PrunePairs drops dangling pairs from m and returns how many were removed.
func PrunePairs(m *reconcile.Mapping, dangling []DanglingPair) int {
	removed := 0
	for _, d := range dangling {
		if idB, ok := m.LookupByA(d.IDA); ok && idB == d.IDB {
			m.RemoveByA(d.IDA)
			removed++
		}
	}
	return removed
}

func absent(ctx context.Context, side reconcile.SideAdapter, id string) (bool, error) {
	_, err := side.Get(ctx, id)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, reconcile.ErrNotFound):
		return true, nil
	default:
		return false, err
	}
}
