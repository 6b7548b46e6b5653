package ctxutil_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigobdz/lint-staged/internal/ctxutil"
)

func TestCanceled(t *testing.T) {
	t.Parallel()

	t.Run("nil for active context", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ctxutil.Canceled(context.Background()))
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, ctxutil.Canceled(ctx), context.Canceled)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()
		<-ctx.Done()
		require.ErrorIs(t, ctxutil.Canceled(ctx), context.DeadlineExceeded)
	})
}

func TestDetached(t *testing.T) {
	t.Parallel()

	logger := zerolog.New(io.Discard).With().Str("run_id", "abc").Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	cancel()

	detached := ctxutil.Detached(ctx)

	require.NoError(t, detached.Err())
	assert.Nil(t, detached.Done())
	assert.Same(t, zerolog.Ctx(ctx), zerolog.Ctx(detached))
}
