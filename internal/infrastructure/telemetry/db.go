package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentDB adds otelgorm spans to db when database tracing is enabled.
// Statements are recorded without bound values unless DBLogFullSQL is set.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	logger.Info("Database tracing enabled", zap.Bool("log_full_sql", cfg.DBLogFullSQL))
	return nil
}

// RegisterPoolMetrics exports connection pool statistics as observable gauges
// read at collection time.
func RegisterPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge("db.pool.open_connections",
		metric.WithDescription("Open connections, in use and idle"))
	if err != nil {
		return nil, err
	}
	inUse, err := meter.Int64ObservableGauge("db.pool.in_use",
		metric.WithDescription("Connections currently in use"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db.pool.wait_count",
		metric.WithDescription("Total connections waited for"))
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db.pool.max_open",
		metric.WithDescription("Configured connection limit"))
	if err != nil {
		return nil, err
	}

	system := metric.WithAttributes(attribute.String("db.system", "postgresql"))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections), system)
		o.ObserveInt64(inUse, int64(s.InUse), system)
		o.ObserveInt64(waits, s.WaitCount, system)
		o.ObserveInt64(maxOpen, int64(s.MaxOpenConnections), system)
		return nil
	}, open, inUse, waits, maxOpen)
}
