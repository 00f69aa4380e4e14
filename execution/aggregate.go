package execution

import (
	"context"

	"github.com/go-sif/sketchfn"
	"github.com/go-sif/sketchfn/internal/codec"
	uuid "github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// shippedState is a worker's extracted Summary, serialized and packed for the coordinator
type shippedState struct {
	prototype sketchfn.Summary // used to deserialize the state, as the coordinator holds no Summary of its own
	packed    []byte
}

// AggregateAll runs each stream on its own worker, each with a StatelessClone
// of fn, at most NumWorkers at a time. Once a worker has consumed its whole
// stream, its extracted state is serialized and packed with the configured
// codec. The coordinator then unpacks each state and folds them, in stream
// order, into a fresh StatelessClone of fn which is returned. fn itself is never
// mutated. Streams without any Summary contribute nothing.
func AggregateAll(ctx context.Context, fn sketchfn.AggregateFunction, streams [][]sketchfn.Summary, opts *Options) (sketchfn.AggregateFunction, error) {
	opts, err := ensureDefaultOptionsValues(opts)
	if err != nil {
		return nil, err
	}
	stateCodec, err := codec.ForName(opts.Codec)
	if err != nil {
		return nil, err
	}
	defer stateCodec.Destroy()
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger.With(zap.String("run_id", runID.String()), zap.Stringer("descriptor", fn.Descriptor()))
	logger.Debug("Starting aggregation", zap.Int("streams", len(streams)), zap.Int("workers", opts.NumWorkers), zap.String("codec", stateCodec.Name()))

	shipped := make([]*shippedState, len(streams))
	sem := semaphore.NewWeighted(int64(opts.NumWorkers))
	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i, stream := range streams {
		if acquireErr = sem.Acquire(gctx, 1); acquireErr != nil {
			break
		}
		worker, stream := i, stream
		g.Go(func() error {
			defer sem.Release(1)
			state, err := runWorker(gctx, fn.StatelessClone(), stream, stateCodec)
			if err != nil {
				logger.Error("Aggregation worker failed", zap.Int("worker", worker), zap.Error(err))
				return err
			}
			if state != nil {
				logger.Debug("Aggregation worker finished", zap.Int("worker", worker), zap.Int("inputs", len(stream)), zap.Int("bytes", len(state.packed)))
			}
			shipped[worker] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if acquireErr != nil {
		return nil, acquireErr
	}

	result := fn.StatelessClone()
	for _, state := range shipped {
		if state == nil {
			continue
		}
		buf, err := stateCodec.Unpack(state.packed)
		if err != nil {
			return nil, err
		}
		summary, err := state.prototype.FromBytes(buf)
		if err != nil {
			return nil, err
		}
		if err := result.Aggregate(summary); err != nil {
			return nil, err
		}
	}
	logger.Debug("Finished aggregation", zap.Bool("empty", result.State() == nil))
	return result, nil
}

// runWorker aggregates a single stream and packs the extracted state. It returns nil if the stream held no Summary.
func runWorker(ctx context.Context, worker sketchfn.AggregateFunction, stream []sketchfn.Summary, stateCodec codec.StateCodec) (*shippedState, error) {
	var prototype sketchfn.Summary
	for _, s := range stream {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := worker.Aggregate(s); err != nil {
			return nil, err
		}
		if prototype == nil && !sketchfn.IsAbsent(s) {
			prototype = s
		}
	}
	state := worker.State()
	if sketchfn.IsAbsent(state) {
		return nil, nil
	}
	buf, err := state.ToBytes()
	if err != nil {
		return nil, err
	}
	packed, err := stateCodec.Pack(buf)
	if err != nil {
		return nil, err
	}
	return &shippedState{prototype: prototype, packed: packed}, nil
}
