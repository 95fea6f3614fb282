package service

import (
	"context"
	"time"

	"harumnesia/internal/logger"

	"go.opentelemetry.io/otel"
)

// Pinger is satisfied by the database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter reports the ML circuit breaker state.
type BreakerReporter interface {
	State() string
}

type HealthService struct {
	db Pinger
	ml BreakerReporter
}

type HealthStatus struct {
	Mongo     string `json:"mongo"`
	MLBreaker string `json:"mlBreaker,omitempty"`
}

func (s HealthStatus) Healthy() bool {
	return s.Mongo == "UP"
}

var HealthServiceTracer = otel.Tracer("HealthService")

func NewHealthService(db Pinger, ml BreakerReporter) *HealthService {
	return &HealthService{db: db, ml: ml}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, span := HealthServiceTracer.Start(ctx, "HealthService.Check")
	defer span.End()

	status := HealthStatus{Mongo: "UP"}

	// MongoDB
	mongoCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.Ping(mongoCtx); err != nil {
		logger.Warn(ctx, "MongoDB ping failed", logger.Err(err))
		status.Mongo = "DOWN"
	}

	if s.ml != nil {
		status.MLBreaker = s.ml.State()
	}
	return status
}
