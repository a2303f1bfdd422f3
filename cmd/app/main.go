package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"groundhandling/cmd"
	apihttp "groundhandling/internal/adapters/in/http"
	"groundhandling/internal/core/application/saga"
	"groundhandling/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	var gormDB *gorm.DB
	if configs.UsesPostgres() {
		db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		gormDB = db
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	server := apihttp.NewServer(
		app.CreateSubmitOrderCommandHandler(),
		app.CreateRemoveOrderCommandHandler(),
		app.CreateRetryOrderCommandHandler(),
		app.CreateCollectCargoCommandHandler(),
		app.CreateListActiveOrdersQueryHandler(),
		app.CreateListDeadLettersQueryHandler(),
		app.CreateListVehiclesQueryHandler(),
	)
	e := apihttp.NewRouter(server, logger)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting web server: %v", startErr)
		}
	}()
	logger.Info("ground handling service started", "port", configs.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobManager.StopAll()
	if err = app.DispatchOrdersCommandHandler().Stop(ctx); err != nil {
		logger.Error("sagas did not stop in time", "error", err)
	}
	if err = e.Shutdown(ctx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
	if err = app.Close(); err != nil {
		logger.Error("closing outbound connections failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded, using the process environment")
	}

	config := cmd.Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		DBHost:     envString("DB_HOST", ""),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     envString("DB_USER", ""),
		DBPassword: envString("DB_PASSWORD", ""),
		DBName:     envString("DB_NAME", ""),
		DBSslMode:  envString("DB_SSLMODE", "disable"),

		GroundControlURL:    envString("GROUND_CONTROL_URL", "http://localhost:8081"),
		BoardServiceURL:     envString("BOARD_SERVICE_URL", "http://localhost:8082"),
		PassengerServiceURL: envString("PASSENGER_SERVICE_URL", "http://localhost:8083"),
		ReportingServiceURL: envString("REPORTING_SERVICE_URL", "http://localhost:8084"),
		HTTPClientTimeout:   envDuration("HTTP_CLIENT_TIMEOUT", 5*time.Second),

		KafkaHost:             envString("KAFKA_HOST", ""),
		KafkaOrderEventsTopic: envString("KAFKA_ORDER_EVENTS_TOPIC", "ground.order.events"),

		BusCount:         envInt("BUS_COUNT", 5),
		BaggageCartCount: envInt("BAGGAGE_CART_COUNT", 3),
		MaxOrderAttempts: envInt("MAX_ORDER_ATTEMPTS", commands.DefaultMaxOrderAttempts),
		OrderDeadline:    envDuration("ORDER_DEADLINE", saga.DefaultOrderDeadline),
		TransitDelay:     envDuration("TRANSIT_DELAY", time.Second),
		ServiceTime:      envDuration("SERVICE_TIME", saga.DefaultServiceTime),
		RetryInterval:    envDuration("RETRY_INTERVAL", time.Second),
		BatchSize:        envInt("BATCH_SIZE", commands.DefaultBatchSize),
	}
	return config
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}
