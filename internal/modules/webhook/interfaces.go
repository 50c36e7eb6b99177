package webhook

import (
	"context"

	"bookinghook/internal/domain"
)

// RecordRepository persists normalized records keyed by idempotency key.
type RecordRepository interface {
	// CreateIfAbsent inserts rec unless a record with the same idempotency key
	// exists. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, rec *domain.BookingRecord) (bool, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.BookingRecord, error)
	GetByQRToken(ctx context.Context, token string) (*domain.BookingRecord, error)
}

// InFlightGuard suppresses concurrent deliveries of the same booking.
type InFlightGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
