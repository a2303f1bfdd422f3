package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GroundControlURL    string
	BoardServiceURL     string
	PassengerServiceURL string
	ReportingServiceURL string
	HTTPClientTimeout   time.Duration

	KafkaHost             string
	KafkaOrderEventsTopic string

	BusCount         int
	BaggageCartCount int
	MaxOrderAttempts int
	OrderDeadline    time.Duration
	TransitDelay     time.Duration
	ServiceTime      time.Duration
	RetryInterval    time.Duration
	BatchSize        int
}

// UsesPostgres reports whether dead letters go to Postgres instead of memory.
func (c Config) UsesPostgres() bool {
	return c.DBHost != ""
}

// UsesKafka reports whether order events go to Kafka instead of the log.
func (c Config) UsesKafka() bool {
	return c.KafkaHost != ""
}

// DSN builds the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
