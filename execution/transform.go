package execution

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-sif/sketchfn"
	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TransformAll applies fn to every row, splitting rows into contiguous ranges
// across workers. The output preserves row order. Row errors are aggregated
// into a *multierror.Error; with IgnoreRowErrors they are logged instead and the
// corresponding output is nil.
func TransformAll(ctx context.Context, fn sketchfn.TransformFunction, rows [][]interface{}, opts *Options) ([][]interface{}, error) {
	opts, err := ensureDefaultOptionsValues(opts)
	if err != nil {
		return nil, err
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger.With(zap.String("run_id", runID.String()), zap.Stringer("descriptor", fn.Descriptor()))
	logger.Debug("Starting transform", zap.Int("rows", len(rows)), zap.Int("workers", opts.NumWorkers))

	results := make([][]interface{}, len(rows))
	var rowErrs *multierror.Error
	var rowErrsLock sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for worker, r := range split(len(rows), opts.NumWorkers) {
		worker, start, end := worker, r[0], r[1]
		g.Go(func() error {
			clone := fn.StatelessClone()
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := clone.Transform(rows[i])
				if err != nil {
					if opts.IgnoreRowErrors {
						logger.Warn("Ignoring row error", zap.Int("worker", worker), zap.Int("row", i), zap.Error(err))
						continue
					}
					rowErrsLock.Lock()
					rowErrs = multierror.Append(rowErrs, fmt.Errorf("row %d: %w", i, err))
					rowErrsLock.Unlock()
					continue
				}
				results[i] = out
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := rowErrs.ErrorOrNil(); err != nil {
		return nil, err
	}
	logger.Debug("Finished transform", zap.Int("rows", len(rows)))
	return results, nil
}

// split divides n items into at most numWorkers contiguous [start, end) ranges
func split(n int, numWorkers int) [][2]int {
	if n == 0 {
		return nil
	}
	if numWorkers > n {
		numWorkers = n
	}
	ranges := make([][2]int, 0, numWorkers)
	size := n / numWorkers
	rem := n % numWorkers
	start := 0
	for w := 0; w < numWorkers; w++ {
		end := start + size
		if w < rem {
			end++
		}
		ranges = append(ranges, [2]int{start, end})
		start = end
	}
	return ranges
}
