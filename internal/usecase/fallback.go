package usecase

import (
	"context"
	"errors"
	"fmt"
)

// stage is one attempt in an ordered fallback chain.
type stage struct {
	name string
	run  func(context.Context) error
}

// firstSuccess runs stages in order and stops at the first that succeeds.
// A cancelled context short-circuits the chain. When every stage fails the
// errors are joined so nothing is lost.
func firstSuccess(ctx context.Context, stages ...stage) error {
	var errs []error
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.run(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
	}
	return errors.Join(errs...)
}
