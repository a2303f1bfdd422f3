package commands_test

import (
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

func TestNewRemoveOrderCommand(t *testing.T) {
	t.Run("should trim the order id", func(t *testing.T) {
		cmd, err := commands.NewRemoveOrderCommand(" 17 ")
		require.NoError(t, err)
		assert.Equal(t, "17", cmd.OrderID())
	})

	t.Run("should require an order id", func(t *testing.T) {
		_, err := commands.NewRemoveOrderCommand("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRemoveOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should remove an active order and announce it", func(t *testing.T) {
		ctx := t.Context()
		registry := memory.NewOrderRegistry()
		o, _ := order.NewOrder("17", "SU-1402", order.Discharge, vehicle.Bus, nil)
		require.NoError(t, registry.Add(ctx, o))

		publisher := new(MockOrderEventPublisher)
		publisher.On("Publish", mock.Anything, eventOfType(ports.OrderRemoved)).Return(nil).Once()

		h := commands.NewRemoveOrderCommandHandler(registry, publisher, nil)
		cmd, _ := commands.NewRemoveOrderCommand("17")

		require.NoError(t, h.Handle(ctx, cmd))

		_, err := registry.Get(ctx, "17")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		publisher.AssertExpectations(t)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		ctx := t.Context()
		publisher := new(MockOrderEventPublisher)
		h := commands.NewRemoveOrderCommandHandler(memory.NewOrderRegistry(), publisher, nil)
		cmd, _ := commands.NewRemoveOrderCommand("missing")

		assert.NoError(t, h.Handle(ctx, cmd))
		assert.NoError(t, h.Handle(ctx, cmd))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
