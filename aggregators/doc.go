// Package aggregators contains the AggregateFunction lifecycle shared by every Summary kind,
// along with constructors declaring the Descriptor of each built-in kind.
package aggregators
