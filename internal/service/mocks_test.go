package service

import (
	"context"
	"time"

	"github.com/stayviet/stayviet/internal/domain"
)

type mockPropertiesRepo struct {
	getByID      func(ctx context.Context, id int64) (*domain.Property, error)
	list         func(ctx context.Context) ([]domain.Property, error)
	updateRating func(ctx context.Context, id int64, s domain.RatingSummary) error
}

func (m *mockPropertiesRepo) List(ctx context.Context) ([]domain.Property, error) {
	return m.list(ctx)
}

func (m *mockPropertiesRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return m.getByID(ctx, id)
}

func (m *mockPropertiesRepo) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	panic("not implemented")
}

func (m *mockPropertiesRepo) UpdateRating(ctx context.Context, id int64, s domain.RatingSummary) error {
	return m.updateRating(ctx, id, s)
}

type mockBookingsRepo struct {
	create     func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	getByID    func(ctx context.Context, id int64) (*domain.Booking, error)
	hasOverlap func(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error)
	listByUser func(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	cancel     func(ctx context.Context, id int64) (*domain.Booking, error)
}

func (m *mockBookingsRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return m.create(ctx, b)
}

func (m *mockBookingsRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByID(ctx, id)
}

func (m *mockBookingsRepo) HasOverlap(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	return m.hasOverlap(ctx, propertyID, checkIn, checkOut)
}

func (m *mockBookingsRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return m.listByUser(ctx, userID, limit, offset)
}

func (m *mockBookingsRepo) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.cancel(ctx, id)
}

type mockReviewsRepo struct {
	create           func(ctx context.Context, rv *domain.Review) (*domain.Review, error)
	getByID          func(ctx context.Context, id int64) (*domain.Review, error)
	deleteFn         func(ctx context.Context, id int64) error
	existsForBooking func(ctx context.Context, bookingID, userID int64) (bool, error)
	listByProperty   func(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, int, error)
	listByUser       func(ctx context.Context, userID int64) ([]domain.Review, error)
	aggregate        func(ctx context.Context, propertyID int64) (domain.RatingSummary, error)
}

func (m *mockReviewsRepo) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	return m.create(ctx, rv)
}

func (m *mockReviewsRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return m.getByID(ctx, id)
}

func (m *mockReviewsRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockReviewsRepo) ExistsForBooking(ctx context.Context, bookingID, userID int64) (bool, error) {
	return m.existsForBooking(ctx, bookingID, userID)
}

func (m *mockReviewsRepo) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, int, error) {
	return m.listByProperty(ctx, propertyID, limit, offset)
}

func (m *mockReviewsRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return m.listByUser(ctx, userID)
}

func (m *mockReviewsRepo) AggregateForProperty(ctx context.Context, propertyID int64) (domain.RatingSummary, error) {
	return m.aggregate(ctx, propertyID)
}

// mockCache never hits and records invalidations.
type mockCache struct {
	deleted []string
}

func (m *mockCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }

func (m *mockCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return nil
}

func (m *mockCache) Del(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	return nil
}
