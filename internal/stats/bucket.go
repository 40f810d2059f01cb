// Package stats is the trade-statistics aggregation engine: pure
// functions that turn a user's closed trade history into derived
// analytical views. Nothing in this package touches storage or mutates
// its input; every builder is a projection over the trade set it is
// handed.
package stats

import (
	"sort"
	"time"

	"tradejournal/internal/domain/trade"
)

// Granularity selects the calendar resolution of a bucket key
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// BucketKey derives the calendar bucket a timestamp falls into.
// Keys are UTC-normalized so that bucket membership never drifts with
// the host timezone, and zero-padded so lexicographic order is
// chronological order.
func BucketKey(t time.Time, g Granularity) string {
	t = t.UTC()
	if g == GranularityDay {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01")
}

// Bucket is one calendar bucket with the trades that fell into it
type Bucket struct {
	Key    string
	Trades []*trade.Trade
}

// GroupBy partitions trades into buckets using keyFn. Trades keep their
// relative order within a bucket; buckets are returned sorted
// chronologically.
func GroupBy(trades []*trade.Trade, keyFn func(*trade.Trade) string) []Bucket {
	index := make(map[string]int, len(trades))
	buckets := make([]Bucket, 0)

	for _, t := range trades {
		key := keyFn(t)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Trades = append(buckets[i].Trades, t)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// OpenMonthKey buckets a trade by the month it was opened in
func OpenMonthKey(t *trade.Trade) string {
	return BucketKey(t.OpenDate, GranularityMonth)
}

// OpenDayKey buckets a trade by the day it was opened on
func OpenDayKey(t *trade.Trade) string {
	return BucketKey(t.OpenDate, GranularityDay)
}

// CloseMonthKey buckets a trade by the month it was closed in
func CloseMonthKey(t *trade.Trade) string {
	return BucketKey(t.CloseDate, GranularityMonth)
}

// BucketValue pairs a bucket key with a reduced aggregate
type BucketValue[V any] struct {
	Key   string
	Value V
}

// FoldBuckets applies reduce to each bucket independently. There is no
// cross-bucket state: the reducer sees one bucket's trades at a time.
func FoldBuckets[V any](buckets []Bucket, reduce func(trades []*trade.Trade) V) []BucketValue[V] {
	out := make([]BucketValue[V], 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketValue[V]{Key: b.Key, Value: reduce(b.Trades)})
	}
	return out
}
