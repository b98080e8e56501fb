// Package ticketing implements the booking lifecycle workflows on top of a
// domain.Gateway. Multi-statement workflows run in a single transaction so a
// failing step never leaves partial rows behind.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/ticketmaster/internal/domain"
	appvalidator "github.com/metinatakli/ticketmaster/internal/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/metinatakli/ticketmaster/internal/ticketing"
	dateLayout          = "2006-01-02"
	clockLayout         = "15:04:05"
	maxTxAttempts       = 3
)

type Service struct {
	gateway    domain.Gateway
	identity   domain.IdentityManager
	validator  *validator.Validate
	logger     *slog.Logger
	tracer     trace.Tracer
	operations metric.Int64Counter
}

func NewService(
	gateway domain.Gateway,
	identity domain.IdentityManager,
	validator *validator.Validate,
	logger *slog.Logger) *Service {

	meter := otel.Meter(instrumentationName)

	operations, err := meter.Int64Counter(
		"ticketmaster.operations",
		metric.WithDescription("Number of ticketing operations by outcome"),
	)
	if err != nil {
		logger.Warn("failed to create operations counter", "error", err)
	}

	return &Service{
		gateway:    gateway,
		identity:   identity,
		validator:  validator,
		logger:     logger,
		tracer:     otel.Tracer(instrumentationName),
		operations: operations,
	}
}

// observe runs fn as one named operation: a span, a counter sample and a log
// line carrying the operation id.
func (s *Service) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	opID := uuid.NewString()
	logger := s.logger.With("operation", operation, "op_id", opID)

	ctx, span := s.tracer.Start(ctx, operation, trace.WithAttributes(attribute.String("op_id", opID)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	outcome := "ok"
	switch {
	case err == nil:
		logger.Info("operation completed", "duration", time.Since(start))
	case errors.Is(err, domain.ErrInvalidInput):
		outcome = "rejected"
		logger.Info("operation rejected", "error", err)
	default:
		outcome = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("operation failed", "error", err)
	}

	if s.operations != nil {
		s.operations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}

	return err
}

func (s *Service) validateInput(input any) error {
	err := s.validator.Struct(input)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, appvalidator.Describe(err))
	}

	return nil
}

// retrySerializable reruns fn while it fails with a serialization conflict.
func retrySerializable(ctx context.Context, fn func() error) error {
	var err error

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrSerialization) {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(err, ctxErr)
		}
	}

	return err
}

func parseDate(field, value string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %s must be a date (yyyy-mm-dd)", domain.ErrInvalidInput, field)
	}

	return t.Format(dateLayout), nil
}

func parseClock(field, value string) (time.Time, error) {
	t, err := appvalidator.ParseClock(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a time of day (hh:mm or hh:mm:ss)", domain.ErrInvalidInput, field)
	}

	return t, nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}

	return value, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}
