package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"groundhandling/internal/adapters/out/eventlog"
	"groundhandling/internal/adapters/out/httpapi"
	"groundhandling/internal/adapters/out/kafka"
	"groundhandling/internal/adapters/out/memory"
	"groundhandling/internal/adapters/out/postgres/deadletterrepo"
	"groundhandling/internal/core/application/gateway"
	"groundhandling/internal/core/application/movement"
	"groundhandling/internal/core/application/saga"
	"groundhandling/internal/core/application/usecases/commands"
	"groundhandling/internal/core/application/usecases/queries"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/domain/services"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	registry    *memory.OrderRegistry
	queue       *memory.OrderQueue
	manifests   *memory.ManifestBuffer
	deadLetters ports.DeadLetterRepository
	publisher   ports.OrderEventPublisher
	kafkaWriter *kafka.OrderEventPublisher

	fleet      *vehicle.Pool
	runner     *saga.Runner
	dispatcher *commands.DispatchOrdersCommandHandler
}

// NewCompositionRoot builds the long-lived components. gormDB may be nil, in
// which case dead letters are kept in memory.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		registry:  memory.NewOrderRegistry(),
		queue:     memory.NewOrderQueue(),
		manifests: memory.NewManifestBuffer(),
	}

	if gormDB != nil {
		if err := deadletterrepo.Migrate(gormDB); err != nil {
			return nil, fmt.Errorf("migrate dead letters: %w", err)
		}
		c.deadLetters = deadletterrepo.NewGormDeadLetterRepository(gormDB)
	} else {
		c.deadLetters = memory.NewDeadLetterRepository()
	}

	if cfg.UsesKafka() {
		c.kafkaWriter = kafka.NewOrderEventPublisher(cfg.KafkaHost, cfg.KafkaOrderEventsTopic)
		c.publisher = c.kafkaWriter
	} else {
		c.publisher = eventlog.NewPublisher(logger)
	}

	fleet, err := vehicle.NewFleet(map[vehicle.Kind]int{
		vehicle.Bus:         cfg.BusCount,
		vehicle.BaggageCart: cfg.BaggageCartCount,
	}, vehicle.DefaultPollInterval)
	if err != nil {
		return nil, fmt.Errorf("create fleet: %w", err)
	}
	c.fleet = fleet

	vehicleDispatcher, err := services.NewVehicleDispatcher(fleet)
	if err != nil {
		return nil, fmt.Errorf("create vehicle dispatcher: %w", err)
	}

	groundService := httpapi.NewGroundService(httpapi.NewClient(cfg.ReportingServiceURL, cfg.HTTPClientTimeout))
	gw, err := gateway.New(
		httpapi.NewGroundControl(httpapi.NewClient(cfg.GroundControlURL, cfg.HTTPClientTimeout)),
		httpapi.NewBoard(httpapi.NewClient(cfg.BoardServiceURL, cfg.HTTPClientTimeout)),
		httpapi.NewPassengerRegistry(httpapi.NewClient(cfg.PassengerServiceURL, cfg.HTTPClientTimeout)),
		groundService,
		groundService,
		gateway.Config{
			Attempts:           gateway.DefaultAttempts,
			Interval:           cfg.RetryInterval,
			GarageExitInterval: cfg.RetryInterval,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	engineCfg := movement.DefaultConfig()
	engineCfg.TransitDelay = cfg.TransitDelay
	engineCfg.DenialDelay = cfg.RetryInterval
	engine, err := movement.NewEngine(gw, engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create movement engine: %w", err)
	}

	c.runner, err = saga.NewRunner(gw, engine, vehicleDispatcher, saga.Config{
		ServiceTime:   cfg.ServiceTime,
		OrderDeadline: cfg.OrderDeadline,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create saga runner: %w", err)
	}

	c.dispatcher = commands.NewDispatchOrdersCommandHandler(
		c.registry, c.queue, c.runner, c.deadLetters, c.publisher, cfg.MaxOrderAttempts, logger)

	return c, nil
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.registry, c.queue, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRemoveOrderCommandHandler() commands.RemoveOrderCommandHandler {
	return commands.NewRemoveOrderCommandHandler(c.registry, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRetryOrderCommandHandler() commands.RetryOrderCommandHandler {
	return commands.NewRetryOrderCommandHandler(c.registry, c.queue, c.deadLetters, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCollectCargoCommandHandler() commands.CollectCargoCommandHandler {
	return commands.NewCollectCargoCommandHandler(
		c.manifests, c.CreateSubmitOrderCommandHandler(), c.cfg.BatchSize, c.logger)
}

// DispatchOrdersCommandHandler is shared: it owns the running sagas.
func (c *CompositionRoot) DispatchOrdersCommandHandler() *commands.DispatchOrdersCommandHandler {
	return c.dispatcher
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateListDeadLettersQueryHandler() queries.ListDeadLettersQueryHandler {
	return queries.NewListDeadLettersQueryHandler(c.deadLetters)
}

func (c *CompositionRoot) CreateListVehiclesQueryHandler() queries.ListVehiclesQueryHandler {
	return queries.NewListVehiclesQueryHandler(c.fleet)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.CreateListActiveOrdersQueryHandler(), c.queue, c.logger)
}

// Close releases outbound connections.
func (c *CompositionRoot) Close() error {
	var err error
	if c.kafkaWriter != nil {
		err = errors.Join(err, c.kafkaWriter.Close())
	}
	return err
}
