package webhook

import (
	"context"
	"errors"
	"testing"

	"bookinghook/internal/domain"
	"bookinghook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) CreateIfAbsent(ctx context.Context, rec *domain.BookingRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.BookingRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockRecordRepository) GetByQRToken(ctx context.Context, token string) (*domain.BookingRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

type MockInFlightGuard struct {
	mock.Mock
}

func (m *MockInFlightGuard) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockInFlightGuard) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestService_Ingest_FirstDelivery(t *testing.T) {
	repo := new(MockRecordRepository)
	guard := new(MockInFlightGuard)
	svc := NewService(newTestNormalizer(t), repo, guard, nil)

	guard.On("Acquire", mock.Anything, "booking:book_456").Return(true, nil)
	guard.On("Release", mock.Anything, "booking:book_456").Return(nil)
	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(r *domain.BookingRecord) bool {
		return r.BookingID == "book_456" && r.Type == domain.BookingTypeEvent
	})).Return(true, nil)

	res, err := svc.Ingest(context.Background(), decode(t, eventPayload), nil)
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.Equal(t, "booking:book_456", res.Record.IdempotencyKey)

	repo.AssertExpectations(t)
	guard.AssertExpectations(t)
	repo.AssertNotCalled(t, "GetByIdempotencyKey", mock.Anything, mock.Anything)
}

func TestService_Ingest_DuplicateReturnsStored(t *testing.T) {
	repo := new(MockRecordRepository)
	svc := NewService(newTestNormalizer(t), repo, nil, nil)

	stored := &domain.BookingRecord{BookingID: "book_456", IdempotencyKey: "booking:book_456"}
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetByIdempotencyKey", mock.Anything, "booking:book_456").Return(stored, nil)

	res, err := svc.Ingest(context.Background(), decode(t, eventPayload), nil)
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Same(t, stored, res.Record)
}

func TestService_Ingest_InFlight(t *testing.T) {
	repo := new(MockRecordRepository)
	guard := new(MockInFlightGuard)
	svc := NewService(newTestNormalizer(t), repo, guard, nil)

	guard.On("Acquire", mock.Anything, "booking:book_456").Return(false, nil)

	_, err := svc.Ingest(context.Background(), decode(t, eventPayload), nil)
	assert.ErrorIs(t, err, ErrDuplicateInFlight)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Ingest_GuardFailureFallsBackToStore(t *testing.T) {
	repo := new(MockRecordRepository)
	guard := new(MockInFlightGuard)
	svc := NewService(newTestNormalizer(t), repo, guard, nil)

	guard.On("Acquire", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	res, err := svc.Ingest(context.Background(), decode(t, eventPayload), nil)
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Ingest_InvalidPayloadSkipsStorage(t *testing.T) {
	repo := new(MockRecordRepository)
	guard := new(MockInFlightGuard)
	svc := NewService(newTestNormalizer(t), repo, guard, nil)

	_, err := svc.Ingest(context.Background(), decode(t, `{"data":{"booking":{"id":"b"},"customer":{"email":"a@b.c"}}}`), nil)
	assert.ErrorIs(t, err, ErrUnknownShape)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	guard.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
}

func TestService_Ingest_StoreError(t *testing.T) {
	repo := new(MockRecordRepository)
	svc := NewService(newTestNormalizer(t), repo, nil, nil)

	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, errors.New("db down"))

	_, err := svc.Ingest(context.Background(), decode(t, eventPayload), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestService_GetByToken(t *testing.T) {
	repo := new(MockRecordRepository)
	svc := NewService(newTestNormalizer(t), repo, nil, nil)

	rec := &domain.BookingRecord{BookingID: "b"}
	repo.On("GetByQRToken", mock.Anything, "tok").Return(rec, nil)
	repo.On("GetByQRToken", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	got, err := svc.GetByToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Same(t, rec, got)

	_, err = svc.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
