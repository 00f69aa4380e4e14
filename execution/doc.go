// Package execution feeds inputs to sketchfn functions on a pool of workers. Every worker
// receives its own StatelessClone of the supplied function, so no function instance is
// ever shared between goroutines. Aggregations are completed per worker, then their
// extracted states are packed, shipped to the coordinator and merged in stream order.
package execution
