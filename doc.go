// Package sketchfn contains the core components of sketchfn, a pluggable function abstraction for
// per-element transformation and streaming aggregation of mergeable summaries.
// This root package defines the types which are employed when calling functions from an execution
// engine, as well as when extending the framework with new functions and Summary kinds.
package sketchfn
