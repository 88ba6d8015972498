package wallet

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DeriveRange derives the children start..start+count-1 of parent
// concurrently on up to workers goroutines (NumCPU when workers < 1).
// Keys are returned in index order. The first failure cancels the rest.
func DeriveRange(ctx context.Context, parent *HDKey, start, count uint32, workers int) ([]*HDKey, error) {
	if count == 0 {
		return nil, nil
	}
	if uint64(start)+uint64(count) > 1<<32 {
		return nil, fmt.Errorf("%w: range %d+%d exceeds the index space", ErrInvalidPath, start, count)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	keys := make([]*HDKey, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := uint32(0); i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child, err := parent.DeriveChild(start + i)
			if err != nil {
				return err
			}
			keys[i] = child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
