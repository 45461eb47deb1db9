// Package database owns the MongoDB client.
//
// One client is created at startup, pinged, and shared by every request
// through the server container; the driver pools connections internally.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/car-doctor/internal/config"
	loggerConfig "github.com/deppfellow/car-doctor/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	ServicesCollection = "services"
	OrdersCollection   = "orders"
)

const DatabasePingTimeout = 10

type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB with the Stable API v1 in strict mode and
// verifies the connection with a ping.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI()).
		SetServerAPIOptions(serverAPI).
		SetAppName(cfg.Database.AppName).
		SetConnectTimeout(cfg.Database.ConnectTimeout)

	if cfg.Database.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	if monitor := commandMonitor(cfg, logger, loggerService); monitor != nil {
		clientOptions.SetMonitor(monitor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}, nil
}

// commandMonitor logs commands in the local environment and reports them
// to New Relic when the agent runs. nrmongo wraps the local monitor so
// both see every event.
func commandMonitor(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *event.CommandMonitor {
	var monitor *event.CommandMonitor

	if cfg.Primary.Env == "local" {
		level := loggerConfig.GetMongoLogLevel(logger.GetLevel())
		monitor = loggerConfig.NewCommandMonitor(
			logger.Level(level),
			cfg.Observability.Logging.SlowQueryThreshold,
		)
	}

	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	return monitor
}

// Services returns the service catalog collection.
func (db *Database) Services() *mongo.Collection {
	return db.DB.Collection(ServicesCollection)
}

// Orders returns the orders collection.
func (db *Database) Orders() *mongo.Collection {
	return db.DB.Collection(OrdersCollection)
}

// Ping checks the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
