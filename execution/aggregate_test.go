package execution

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/go-sif/sketchfn"
	"github.com/go-sif/sketchfn/aggregators"
	errors "github.com/go-sif/sketchfn/errors"
	"github.com/go-sif/sketchfn/internal/codec"
	"github.com/go-sif/sketchfn/summaries"
	"github.com/stretchr/testify/require"
)

func countStreams(numStreams int, perStream int) [][]sketchfn.Summary {
	streams := make([][]sketchfn.Summary, numStreams)
	for i := range streams {
		for j := 0; j < perStream; j++ {
			c := summaries.Counter()
			c.Add(uint64(i*perStream + j))
			streams[i] = append(streams[i], c)
		}
	}
	return streams
}

func quantileStreams(t *testing.T, numStreams int) [][]sketchfn.Summary {
	streams := make([][]sketchfn.Summary, numStreams)
	for i := range streams {
		for j := 0; j < 3; j++ {
			q, err := summaries.NewQuantiles(summaries.DefaultRelativeAccuracy)
			require.NoError(t, err)
			for v := 1; v <= 10; v++ {
				require.NoError(t, q.Add(float64(v*(i+1)*(j+1))))
			}
			streams[i] = append(streams[i], q)
		}
	}
	return streams
}

func sequentialFold(t *testing.T, fn sketchfn.AggregateFunction, streams [][]sketchfn.Summary) sketchfn.AggregateFunction {
	res := fn.StatelessClone()
	for _, stream := range streams {
		for _, s := range stream {
			require.NoError(t, res.Aggregate(s))
		}
	}
	return res
}

func TestAggregateAllMatchesSequentialFold(t *testing.T) {
	for _, name := range []string{codec.None, codec.LZ4, codec.Zstd} {
		t.Run(name, func(t *testing.T) {
			opts := testOptions(3)
			opts.Codec = name

			fn := aggregators.Counter()
			streams := countStreams(7, 5)
			res, err := AggregateAll(context.Background(), fn, streams, opts)
			require.NoError(t, err)
			require.Nil(t, fn.State())
			require.EqualValues(t, 34*35/2, res.State().(*summaries.Count).GetCount())
			eq, err := res.Equal(sequentialFold(t, fn, streams))
			require.NoError(t, err)
			require.True(t, eq)

			qfn := aggregators.QuantilesSketch()
			qstreams := quantileStreams(t, 4)
			qres, err := AggregateAll(context.Background(), qfn, qstreams, opts)
			require.NoError(t, err)
			require.Equal(t, 120.0, qres.State().(*summaries.Quantiles).Count())
			eq, err = qres.Equal(sequentialFold(t, qfn, qstreams))
			require.NoError(t, err)
			require.True(t, eq)
		})
	}
}

func TestAggregateAllComposed(t *testing.T) {
	streams := make([][]sketchfn.Summary, 3)
	for i := range streams {
		c := summaries.Counter()
		c.Add(1)
		f, err := summaries.NewFrequencies(8)
		require.NoError(t, err)
		require.NoError(t, f.Update("shared", 1))
		require.NoError(t, f.Update(string(rune('a'+i)), 2))
		streams[i] = []sketchfn.Summary{summaries.Compose(c, f)}
	}
	res, err := AggregateAll(context.Background(), aggregators.Composite(sketchfn.KindCount, sketchfn.KindFrequencies), streams, testOptions(2))
	require.NoError(t, err)
	parts := res.State().(*summaries.Composed).GetResults()
	require.EqualValues(t, 3, parts[0].(*summaries.Count).GetCount())
	freq := parts[1].(*summaries.Frequencies)
	for item, want := range map[string]uint64{"shared": 3, "b": 2} {
		got, err := freq.Estimate(item)
		require.NoError(t, err)
		require.Equal(t, want, got, item)
	}
}

func TestAggregateAllEmptyStreams(t *testing.T) {
	var typedNil *summaries.Count
	streams := [][]sketchfn.Summary{nil, {nil}, {typedNil}}
	res, err := AggregateAll(context.Background(), aggregators.Counter(), streams, testOptions(2))
	require.NoError(t, err)
	require.Nil(t, res.State())

	res, err = AggregateAll(context.Background(), aggregators.Counter(), nil, testOptions(2))
	require.NoError(t, err)
	require.Nil(t, res.State())
}

func TestAggregateAllSkipsAbsentInputs(t *testing.T) {
	c := summaries.Counter()
	c.Add(4)
	streams := [][]sketchfn.Summary{{nil, c, nil}, {}}
	res, err := AggregateAll(context.Background(), aggregators.Counter(), streams, testOptions(2))
	require.NoError(t, err)
	require.EqualValues(t, 4, res.State().(*summaries.Count).GetCount())
}

func TestAggregateAllHeterogeneousInputs(t *testing.T) {
	streams := [][]sketchfn.Summary{{summaries.Counter(), summaries.Adder()}}
	_, err := AggregateAll(context.Background(), aggregators.Counter(), streams, testOptions(1))
	var ierr errors.IncompatibleSummaryError
	require.True(t, goerrors.As(err, &ierr))
}

func TestAggregateAllUnknownCodec(t *testing.T) {
	opts := testOptions(1)
	opts.Codec = "snappy"
	_, err := AggregateAll(context.Background(), aggregators.Counter(), countStreams(1, 1), opts)
	require.Error(t, err)
}

func TestAggregateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AggregateAll(ctx, aggregators.Counter(), countStreams(2, 2), testOptions(1))
	require.ErrorIs(t, err, context.Canceled)
}
