package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bookinghook/internal/domain"
	"bookinghook/internal/pkg/payload"
	"bookinghook/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	normalizer *Normalizer
	records    RecordRepository
	guard      InFlightGuard
	log        logrus.FieldLogger
}

// NewService wires the pipeline to storage. guard may be nil.
func NewService(normalizer *Normalizer, records RecordRepository, guard InFlightGuard, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Service{
		normalizer: normalizer,
		records:    records,
		guard:      guard,
		log:        log,
	}
}

// Ingest normalizes one delivery and stores it once. Repeated deliveries of the
// same booking return the stored record with Duplicate set.
func (s *Service) Ingest(ctx context.Context, body payload.Object, headers map[string]string) (*IngestResult, error) {
	rec, err := s.normalizer.Normalize(body, headers)
	if err != nil {
		return nil, err
	}
	log := s.log.WithFields(logrus.Fields{
		"idempotency_key": rec.IdempotencyKey,
		"type":            rec.Type,
	})

	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, rec.IdempotencyKey)
		if err != nil {
			// the unique index still protects us; keep going without the guard
			log.WithError(err).Warn("in-flight guard unavailable")
		} else if !ok {
			return nil, ErrDuplicateInFlight
		} else {
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), rec.IdempotencyKey); err != nil {
					log.WithError(err).Warn("in-flight guard release failed")
				}
			}()
		}
	}

	created, err := s.records.CreateIfAbsent(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("store booking record: %w", err)
	}
	if created {
		log.Info("booking record stored")
		return &IngestResult{Record: rec, Duplicate: false}, nil
	}

	stored, err := s.records.GetByIdempotencyKey(ctx, rec.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("load stored booking record: %w", err)
	}
	log.Info("duplicate booking delivery")
	return &IngestResult{Record: stored, Duplicate: true}, nil
}

// GetByToken finds the record behind a scanned check-in QR code.
func (s *Service) GetByToken(ctx context.Context, token string) (*domain.BookingRecord, error) {
	rec, err := s.records.GetByQRToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
