package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/pkg/events"
	"github.com/stayviet/stayviet/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, userID, id int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	Cancel(ctx context.Context, userID, id int64) (*domain.Booking, error)
	IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error)
}

type bookingService struct {
	bookings   postgres.BookingsRepo
	properties postgres.PropertiesRepo
	bus        events.Publisher
}

func NewBookingService(bookings postgres.BookingsRepo, properties postgres.PropertiesRepo, bus events.Publisher) BookingService {
	return &bookingService{
		bookings:   bookings,
		properties: properties,
		bus:        bus,
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return nil, domain.ErrNotFound
	}

	nights := domain.Nights(checkIn, checkOut)
	booking := &domain.Booking{
		PropertyID: property.ID,
		UserID:     userID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		TotalPrice: property.Price * int64(nights),
	}

	// The repo runs the overlap check and the insert in one transaction,
	// with the exclusion constraint catching any insert that races past it.
	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	event := events.BookingCreatedEvent{
		BookingID:  created.ID,
		PropertyID: created.PropertyID,
		UserID:     created.UserID,
		CheckIn:    created.CheckIn,
		CheckOut:   created.CheckOut,
		Guests:     created.Guests,
		TotalPrice: created.TotalPrice,
		CreatedAt:  created.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking created event", "error", err, "booking_id", created.ID)
	}

	return created, nil
}

func (s *bookingService) Get(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if !booking.IsOwner(userID) {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *bookingService) Cancel(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if !booking.IsOwner(userID) {
		return nil, domain.ErrForbidden
	}
	if !booking.CanCancel() {
		return nil, domain.ErrNotCancellable
	}

	cancelled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if cancelled == nil {
		// Lost a race with a concurrent status change.
		return nil, domain.ErrNotCancellable
	}

	event := events.BookingCancelledEvent{
		BookingID:   cancelled.ID,
		PropertyID:  cancelled.PropertyID,
		UserID:      cancelled.UserID,
		CancelledAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, events.BookingCancelled, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking cancelled event", "error", err, "booking_id", cancelled.ID)
	}

	return cancelled, nil
}

// IsAvailable reports whether the date range is free of active bookings
// under the inclusive-bound overlap policy. Read-only.
func (s *bookingService) IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	conflict, err := s.bookings.HasOverlap(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
