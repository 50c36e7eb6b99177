package repository

import (
	"context"
	"errors"
	"time"

	"bookinghook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

const pgUniqueViolation = "23505"

type BookingRecordRepository struct {
	db *gorm.DB
}

func NewBookingRecordRepository(db *gorm.DB) *BookingRecordRepository {
	return &BookingRecordRepository{db: db}
}

// CreateIfAbsent inserts rec unless its idempotency key is already stored.
func (r *BookingRecordRepository) CreateIfAbsent(ctx context.Context, rec *domain.BookingRecord) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRecordRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.BookingRecord, error) {
	return r.first(ctx, "idempotency_key = ?", key)
}

func (r *BookingRecordRepository) GetByQRToken(ctx context.Context, token string) (*domain.BookingRecord, error) {
	return r.first(ctx, "qr_token = ?", token)
}

// DeleteOlderThan removes records stored before the cutoff.
func (r *BookingRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&domain.BookingRecord{})
	return res.RowsAffected, res.Error
}

func (r *BookingRecordRepository) first(ctx context.Context, query string, arg any) (*domain.BookingRecord, error) {
	var rec domain.BookingRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
