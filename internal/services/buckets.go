package services

import (
	"slices"

	"pouparia/internal/models"

	"github.com/shopspring/decimal"
)

// Bucket is one calendar slot of a history view
type Bucket struct {
	Key int
	models.Totals
}

// FillBuckets produces one bucket per key, in ascending key order, holding the
// totals of the rows that map to that key. Keys without rows get zeros, rows
// that share a key are summed, and rows whose key is not in keys are ignored.
// The result does not depend on the order of rows.
func FillBuckets[R any](rows []R, keys []int, keyFn func(R) int, totalsFn func(R) models.Totals) []Bucket {
	byKey := make(map[int]models.Totals, len(rows))
	for _, row := range rows {
		key := keyFn(row)
		current, ok := byKey[key]
		if !ok {
			current = zeroTotals()
		}
		byKey[key] = current.Add(totalsFn(row))
	}

	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	buckets := make([]Bucket, 0, len(sorted))
	for _, key := range sorted {
		totals, ok := byKey[key]
		if !ok {
			totals = zeroTotals()
		}
		buckets = append(buckets, Bucket{Key: key, Totals: totals})
	}
	return buckets
}

// KeyRange returns [from, from+1, ..., to]
func KeyRange(from, to int) []int {
	if to < from {
		return []int{}
	}
	keys := make([]int, 0, to-from+1)
	for k := from; k <= to; k++ {
		keys = append(keys, k)
	}
	return keys
}

func zeroTotals() models.Totals {
	return models.Totals{Income: decimal.Zero, Expense: decimal.Zero}
}
