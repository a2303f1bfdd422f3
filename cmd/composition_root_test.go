package cmd_test

import (
	"context"
	"testing"
	"time"

	"groundhandling/cmd"
	"groundhandling/internal/core/application/usecases/commands"
	"groundhandling/internal/core/application/usecases/queries"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:            "8080",
		GroundControlURL:    "http://ground-control.invalid",
		BoardServiceURL:     "http://board.invalid",
		PassengerServiceURL: "http://passengers.invalid",
		ReportingServiceURL: "http://reporting.invalid",
		HTTPClientTimeout:   time.Second,
		BusCount:            2,
		BaggageCartCount:    1,
		MaxOrderAttempts:    3,
		OrderDeadline:       time.Minute,
		TransitDelay:        time.Millisecond,
		ServiceTime:         time.Millisecond,
		RetryInterval:       time.Millisecond,
		BatchSize:           10,
	}
}

func TestConfig(t *testing.T) {
	t.Run("should build a postgres dsn", func(t *testing.T) {
		cfg := cmd.Config{
			DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "ground", DBSslMode: "disable",
		}

		assert.Equal(t, "host=db port=5432 user=u password=p dbname=ground sslmode=disable", cfg.DSN())
		assert.True(t, cfg.UsesPostgres())
		assert.False(t, cfg.UsesKafka())
	})
}

func TestCompositionRoot(t *testing.T) {
	t.Run("should wire in-memory adapters without a database", func(t *testing.T) {
		app, err := cmd.NewCompositionRoot(testConfig(), nil, nil)
		require.NoError(t, err)
		ctx := context.Background()

		submitCmd, err := commands.NewSubmitOrderCommand("o-1", "SU100", order.Load, vehicle.Bus, []string{"p1"})
		require.NoError(t, err)
		require.NoError(t, app.CreateSubmitOrderCommandHandler().Handle(ctx, submitCmd))

		orders, err := app.CreateListActiveOrdersQueryHandler().Handle(ctx, queries.NewListActiveOrdersQuery())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "o-1", orders[0].ID)

		vehicles, err := app.CreateListVehiclesQueryHandler().Handle(ctx, queries.NewListVehiclesQuery())
		require.NoError(t, err)
		assert.Len(t, vehicles, 3)

		letters, err := app.CreateListDeadLettersQueryHandler().Handle(ctx, queries.NewListDeadLettersQuery())
		require.NoError(t, err)
		assert.Empty(t, letters)

		assert.NotNil(t, app.DispatchOrdersCommandHandler())
		assert.NotNil(t, app.CreateJobManager())
		assert.NoError(t, app.Close())
	})

	t.Run("should reject a negative fleet size", func(t *testing.T) {
		cfg := testConfig()
		cfg.BusCount = -1

		_, err := cmd.NewCompositionRoot(cfg, nil, nil)

		assert.Error(t, err)
	})
}
