package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel3 runs three functions concurrently and waits for all of them.
// The first error cancels the context handed to the others and is returned
// wrapped; results are then zero.
func Parallel3[T1, T2, T3 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
	fn3 func(context.Context) (T3, error),
) (r1 T1, r2 T2, r3 T3, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (e error) { r1, e = fn1(gctx); return e })
	g.Go(func() (e error) { r2, e = fn2(gctx); return e })
	g.Go(func() (e error) { r3, e = fn3(gctx); return e })

	if err := g.Wait(); err != nil {
		var (
			z1 T1
			z2 T2
			z3 T3
		)

		return z1, z2, z3, fmt.Errorf("parallel execution failed: %w", err)
	}

	return r1, r2, r3, nil
}
