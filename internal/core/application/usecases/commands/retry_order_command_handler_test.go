package commands_test

import (
	"errors"
	"testing"

	"groundhandling/internal/adapters/out/memory"
	"groundhandling/internal/core/application/usecases/commands"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRetryOrderCommandHandler_Handle(t *testing.T) {
	newDeadLettered := func(t *testing.T) (*memory.OrderRegistry, *memory.DeadLetterRepository) {
		t.Helper()
		ctx := t.Context()
		registry := memory.NewOrderRegistry()
		o, _ := order.NewOrder("17", "SU-1402", order.Discharge, vehicle.Bus, nil)
		o.RecordFailure(errors.New("board unreachable"))
		require.NoError(t, o.DeadLetter(errors.New("board unreachable")))
		require.NoError(t, registry.Add(ctx, o))

		deadLetters := memory.NewDeadLetterRepository()
		require.NoError(t, deadLetters.Save(ctx, ports.DeadLetter{OrderID: "17", Attempts: 1}))
		return registry, deadLetters
	}

	t.Run("should reactivate and requeue a dead-lettered order", func(t *testing.T) {
		ctx := t.Context()
		registry, deadLetters := newDeadLettered(t)
		queue := memory.NewOrderQueue()
		publisher := new(MockOrderEventPublisher)
		publisher.On("Publish", mock.Anything, eventOfType(ports.OrderRequeued)).Return(nil).Once()

		h := commands.NewRetryOrderCommandHandler(registry, queue, deadLetters, publisher, nil)
		cmd, err := commands.NewRetryOrderCommand("17")
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))

		stored, err := registry.Get(ctx, "17")
		require.NoError(t, err)
		assert.Equal(t, order.Active, stored.Status())
		assert.Equal(t, 0, stored.Attempts())
		assert.Equal(t, 1, queue.Len())
		_, err = deadLetters.Get(ctx, "17")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		publisher.AssertExpectations(t)
	})

	t.Run("should refuse an active order", func(t *testing.T) {
		ctx := t.Context()
		registry := memory.NewOrderRegistry()
		o, _ := order.NewOrder("17", "SU-1402", order.Discharge, vehicle.Bus, nil)
		require.NoError(t, registry.Add(ctx, o))
		queue := memory.NewOrderQueue()

		h := commands.NewRetryOrderCommandHandler(registry, queue, memory.NewDeadLetterRepository(), nil, nil)
		cmd, _ := commands.NewRetryOrderCommand("17")

		err := h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 0, queue.Len())
	})

	t.Run("should report an unknown order", func(t *testing.T) {
		h := commands.NewRetryOrderCommandHandler(
			memory.NewOrderRegistry(), memory.NewOrderQueue(), memory.NewDeadLetterRepository(), nil, nil,
		)
		cmd, _ := commands.NewRetryOrderCommand("missing")

		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
	})
}
