package aggregators

import "github.com/go-sif/sketchfn"

func describe(kind sketchfn.Kind) sketchfn.Descriptor {
	return sketchfn.NewDescriptor([]sketchfn.Kind{kind}, []sketchfn.Kind{kind})
}

// Counter returns a new AggregateFunction over Count Summaries
func Counter() sketchfn.AggregateFunction {
	return NewSimple(describe(sketchfn.KindCount))
}

// Adder returns a new AggregateFunction over Sum Summaries
func Adder() sketchfn.AggregateFunction {
	return NewSimple(describe(sketchfn.KindSum))
}

// QuantilesSketch returns a new AggregateFunction over Quantiles Summaries
func QuantilesSketch() sketchfn.AggregateFunction {
	return NewSimple(describe(sketchfn.KindQuantiles))
}

// CardinalitySketch returns a new AggregateFunction over Cardinality Summaries
func CardinalitySketch() sketchfn.AggregateFunction {
	return NewSimple(describe(sketchfn.KindCardinality))
}

// FrequentStrings returns a new AggregateFunction over Frequencies Summaries
func FrequentStrings() sketchfn.AggregateFunction {
	return NewSimple(describe(sketchfn.KindFrequencies))
}

// Composite returns a new AggregateFunction over Composed Summaries whose parts
// have the given Kinds, in order
func Composite(parts ...sketchfn.Kind) sketchfn.AggregateFunction {
	return NewSimple(sketchfn.NewDescriptor([]sketchfn.Kind{sketchfn.KindComposed}, parts))
}
