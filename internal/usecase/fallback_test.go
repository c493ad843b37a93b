package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstSuccessStopsAtFirstWin(t *testing.T) {
	t.Parallel()

	calls := []string{}
	err := firstSuccess(context.Background(),
		stage{"a", func(context.Context) error { calls = append(calls, "a"); return errors.New("a failed") }},
		stage{"b", func(context.Context) error { calls = append(calls, "b"); return nil }},
		stage{"c", func(context.Context) error { calls = append(calls, "c"); return nil }},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestFirstSuccessJoinsAllFailures(t *testing.T) {
	t.Parallel()

	err := firstSuccess(context.Background(),
		stage{"copy trim", func(context.Context) error { return errors.New("bad codec") }},
		stage{"re-encode trim", func(context.Context) error { return errors.New("disk full") }},
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "copy trim: bad codec")
	require.Contains(t, err.Error(), "re-encode trim: disk full")
}

func TestFirstSuccessHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := firstSuccess(ctx,
		stage{"never runs", func(context.Context) error { t.Fatal("stage ran after cancel"); return nil }},
	)
	require.ErrorIs(t, err, context.Canceled)
}
