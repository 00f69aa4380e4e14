// Package transforms contains stateless TransformFunctions, each mapping an input tuple to an output tuple.
package transforms
