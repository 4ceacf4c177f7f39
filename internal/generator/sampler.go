package generator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/chrisdamba/mealgen/internal/models"
)

var (
	ErrInvalidSampleSize     = errors.New("sample size must be positive")
	ErrInvalidSamplingConfig = errors.New("invalid sampling config")
)

// SampleGroupings picks a bounded, deterministic set of groupings from items:
// strided singles, adjacent pairs from a denser strided pool, thirds-based triples
// and one large group spread across the list. When every item fits in sampleSize
// the result is a single grouping holding all items. No items yield no groupings.
//
// With cfg.Dedup set, a grouping structurally equal to an accepted one is skipped
// and does not use up capacity.
func SampleGroupings[T any](items []T, sampleSize int, cfg models.SamplingConfig) ([][]T, error) {
	var accepted [][]T
	resolve := func(idx []int) []T {
		group := make([]T, len(idx))
		for i, j := range idx {
			group[i] = items[j]
		}
		return group
	}

	_, err := sampleIndices(len(items), sampleSize, cfg, func(idx []int) bool {
		group := resolve(idx)
		if cfg.Dedup {
			for _, prev := range accepted {
				if reflect.DeepEqual(prev, group) {
					return false
				}
			}
		}
		accepted = append(accepted, group)
		return true
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// SampleIndexGroupings is SampleGroupings over positions 0..n-1.
func SampleIndexGroupings(n, sampleSize int, cfg models.SamplingConfig) ([][]int, error) {
	return sampleIndices(n, sampleSize, cfg, func([]int) bool { return true })
}

type groupCollector struct {
	limit  int
	accept func([]int) bool
	groups [][]int
}

func (c *groupCollector) full() bool {
	return len(c.groups) >= c.limit
}

func (c *groupCollector) add(idx ...int) {
	if c.full() {
		return
	}
	if c.accept(idx) {
		c.groups = append(c.groups, idx)
	}
}

func sampleIndices(n, sampleSize int, cfg models.SamplingConfig, accept func([]int) bool) ([][]int, error) {
	if sampleSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleSize, sampleSize)
	}
	if cfg.MaxSingles < 0 || cfg.MaxPairs < 0 || cfg.MaxTriples < 0 || cfg.LargeGroupSize < 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidSamplingConfig, cfg)
	}

	c := &groupCollector{limit: sampleSize, accept: accept}
	if n == 0 {
		return c.groups, nil
	}
	if n <= sampleSize {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		c.add(all...)
		return c.groups, nil
	}

	if cfg.MaxSingles > 0 {
		step := max(1, n/cfg.MaxSingles)
		for i, taken := 0, 0; i < n && taken < cfg.MaxSingles; i, taken = i+step, taken+1 {
			c.add(i)
		}
	}

	if cfg.MaxPairs > 0 {
		poolSize := 2 * cfg.MaxPairs
		step := max(1, n/poolSize)
		pool := make([]int, 0, poolSize)
		for i := 0; i < n && len(pool) < poolSize; i += step {
			pool = append(pool, i)
		}
		for p := 0; p+1 < len(pool); p += 2 {
			c.add(pool[p], pool[p+1])
		}
	}

	if third := n / 3; cfg.MaxTriples > 0 && third > 0 {
		step := max(1, third/cfg.MaxTriples)
		for t := 0; t < cfg.MaxTriples; t++ {
			o := t * step
			if o+2*third >= n {
				break
			}
			c.add(o, o+third, o+2*third)
		}
	}

	if size := cfg.LargeGroupSize; size > 0 && n >= size {
		stride := n / size
		group := make([]int, size)
		for k := range group {
			group[k] = k * stride
		}
		c.add(group...)
	}

	return c.groups, nil
}
