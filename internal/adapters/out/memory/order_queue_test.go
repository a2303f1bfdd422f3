package memory_test

import (
	"context"
	"testing"

	"groundhandling/internal/adapters/out/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("should drain in FIFO order", func(t *testing.T) {
		q := memory.NewOrderQueue()
		require.NoError(t, q.Push(ctx, newOrder(t, "a")))
		require.NoError(t, q.Push(ctx, newOrder(t, "b")))
		assert.Equal(t, 2, q.Len())

		items, err := q.Drain(ctx)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].ID())
		assert.Equal(t, "b", items[1].ID())
		assert.Zero(t, q.Len())
	})

	t.Run("should drain nothing when empty", func(t *testing.T) {
		items, err := memory.NewOrderQueue().Drain(ctx)

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
