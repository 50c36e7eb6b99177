package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookinghook/internal/database"
	"bookinghook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func newRecord(bookingID, token string) *domain.BookingRecord {
	return &domain.BookingRecord{
		BookingID:      bookingID,
		CustomerEmail:  "jane@example.com",
		Type:           domain.BookingTypeEvent,
		ItemName:       strPtr("Yoga"),
		Timezone:       "UTC",
		QRToken:        token,
		CheckinURL:     "https://app.example.com/checkin?token=" + token,
		IdempotencyKey: "booking:" + bookingID,
	}
}

func TestCreateIfAbsent_IsIdempotent(t *testing.T) {
	repo := NewBookingRecordRepository(setupDB(t))
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, newRecord("book_1", "tok1"))
	require.NoError(t, err)
	assert.True(t, created)

	again := newRecord("book_1", "tok1")
	again.ItemName = strPtr("Changed")
	created, err = repo.CreateIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.GetByIdempotencyKey(ctx, "booking:book_1")
	require.NoError(t, err)
	assert.Equal(t, "Yoga", *stored.ItemName, "first delivery wins")
	assert.Nil(t, stored.EmployeeName)
	assert.Nil(t, stored.TotalAmount)
}

func TestCreateIfAbsent_StoresLongValues(t *testing.T) {
	repo := NewBookingRecordRepository(setupDB(t))
	ctx := context.Background()

	long := strings.Repeat("x", 500)
	rec := newRecord("book_"+long, "tok-long")
	rec.Currency = strPtr(long)
	rec.BookingStatus = strPtr(long)

	created, err := repo.CreateIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := repo.GetByIdempotencyKey(ctx, "booking:book_"+long)
	require.NoError(t, err)
	assert.Equal(t, long, *stored.Currency)
	assert.Equal(t, long, *stored.BookingStatus)
}

func TestGetByQRToken(t *testing.T) {
	repo := NewBookingRecordRepository(setupDB(t))
	ctx := context.Background()

	_, err := repo.CreateIfAbsent(ctx, newRecord("book_2", "tok2"))
	require.NoError(t, err)

	rec, err := repo.GetByQRToken(ctx, "tok2")
	require.NoError(t, err)
	assert.Equal(t, "book_2", rec.BookingID)

	_, err = repo.GetByQRToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOlderThan(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRecordRepository(db)
	ctx := context.Background()

	old := newRecord("book_old", "tok_old")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, db.Create(old).Error)
	_, err := repo.CreateIfAbsent(ctx, newRecord("book_new", "tok_new"))
	require.NoError(t, err)

	n, err := repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByIdempotencyKey(ctx, "booking:book_old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByIdempotencyKey(ctx, "booking:book_new")
	assert.NoError(t, err)
}
