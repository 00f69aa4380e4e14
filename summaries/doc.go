// Package summaries contains concrete Summary kinds which can be tracked by an AggregateFunction:
// exact counters and sums, composed tuples of Summaries, and probabilistic sketches for quantiles,
// cardinality and frequent items.
package summaries
