// Package service orchestrates the photo disclosure pipeline: validate the
// request, look up the registered photo, stamp it with the transaction ID,
// and seal it for the requesting officer's key.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"fotogate/internal/identity"
	"fotogate/internal/jwe"
	"fotogate/internal/photo"
	"fotogate/internal/photo/metrics"
	"fotogate/internal/photo/store"
	"fotogate/internal/watermark"
	id "fotogate/pkg/domain"
	dErrors "fotogate/pkg/domain-errors"
	"fotogate/pkg/requestcontext"
)

var tracer = otel.Tracer("fotogate/photo")

// DiscloseRequest carries the raw, unvalidated disclosure inputs.
type DiscloseRequest struct {
	NationalID string
	BirthDate  string
	// PseudoID identifies the requesting officer; opaque, logged as-is.
	PseudoID  string
	Recipient jwe.PublicKey
}

// DiscloseResult is the outcome of a successful disclosure.
type DiscloseResult struct {
	TransactionID id.TransactionID
	PhotoID       id.PhotoID
	Token         string
}

// Service runs the disclosure pipeline. It is stateless across calls; every
// call mints its own transaction ID and ephemeral encryption key.
type Service struct {
	store   store.Store
	engine  *watermark.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the Prometheus instruments. Nil disables recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New builds a Service over the given register backend and watermark engine.
func New(st store.Store, engine *watermark.Engine, opts ...Option) *Service {
	s := &Service{
		store:  st,
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Disclose validates the request, retrieves the matching photo, watermarks
// it, and returns it sealed for the recipient key. Validation runs in full
// before any register access; error messages never contain the identity
// number or key material.
func (s *Service) Disclose(ctx context.Context, req DiscloseRequest) (*DiscloseResult, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "photo.Disclose")
	defer span.End()

	number, err := identity.ParseNumber(req.NationalID)
	if err != nil {
		s.metrics.IncrementOutcome("invalid_input")
		return nil, err
	}
	birthDate, err := identity.ParseBirthDateAt(req.BirthDate, requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncrementOutcome("invalid_input")
		return nil, err
	}
	if err := req.Recipient.Validate(); err != nil {
		s.metrics.IncrementOutcome("invalid_input")
		return nil, err
	}

	tid := id.NewTransactionID()
	span.SetAttributes(
		attribute.String("transaction_id", tid.String()),
		attribute.String("pseudo_id", req.PseudoID),
	)

	log := s.logger.With(
		"request_id", requestcontext.RequestID(ctx),
		"transaction_id", tid.String(),
		"pseudo_id", req.PseudoID,
	)
	log.InfoContext(ctx, "disclosure requested", "national_id", number.Masked())

	lookupStart := time.Now()
	rec, err := s.store.Find(ctx, number, birthDate)
	s.metrics.ObserveStageLatency("lookup", time.Since(lookupStart))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementOutcome("not_found")
			log.InfoContext(ctx, "no photo registered", "national_id", number.Masked())
			return nil, err
		}
		s.metrics.IncrementOutcome("internal")
		log.ErrorContext(ctx, "register lookup failed", "error", err.Error())
		return nil, err
	}

	stampStart := time.Now()
	stamped, err := s.engine.Stamp(rec.Image, tid.String())
	s.metrics.ObserveStageLatency("watermark", time.Since(stampStart))
	if err != nil {
		s.metrics.IncrementOutcome("watermark_failed")
		log.ErrorContext(ctx, "watermarking failed", "photo_id", int64(rec.PhotoID), "error", err.Error())
		return nil, err
	}

	payload, err := photo.NewPayload(stamped).Marshal()
	if err != nil {
		s.metrics.IncrementOutcome("internal")
		log.ErrorContext(ctx, "payload serialization failed", "error", err.Error())
		return nil, err
	}

	sealStart := time.Now()
	token, err := jwe.Seal(payload, req.Recipient)
	s.metrics.ObserveStageLatency("encrypt", time.Since(sealStart))
	if err != nil {
		s.metrics.IncrementOutcome("encryption_failed")
		log.ErrorContext(ctx, "token encryption failed", "error", err.Error())
		return nil, err
	}

	s.metrics.IncrementOutcome("disclosed")
	s.metrics.ObserveDiscloseLatency(time.Since(start))
	log.InfoContext(ctx, "photo disclosed",
		"photo_id", int64(rec.PhotoID),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &DiscloseResult{
		TransactionID: tid,
		PhotoID:       rec.PhotoID,
		Token:         token,
	}, nil
}
