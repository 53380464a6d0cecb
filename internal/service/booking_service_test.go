package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/pkg/events"
)

func testProperty() *domain.Property {
	return &domain.Property{ID: 7, Title: "Test listing", Price: 1_000_000, IsAvailable: true}
}

func TestBookingCreateComputesTotalPrice(t *testing.T) {
	var stored *domain.Booking
	bookings := &mockBookingsRepo{
		create: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			stored = b
			out := *b
			out.ID = 1
			out.Status = domain.BookingPending
			return &out, nil
		},
	}
	properties := &mockPropertiesRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	svc := NewBookingService(bookings, properties, events.NoopPublisher{})

	req := &domain.CreateBookingRequest{PropertyID: 7, CheckIn: "2024-06-01", CheckOut: "2024-06-06", Guests: 2}
	created, err := svc.Create(context.Background(), 42, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 5 nights at 1,000,000 VND.
	if stored.TotalPrice != 5_000_000 {
		t.Errorf("TotalPrice = %d, want 5000000", stored.TotalPrice)
	}
	if created.Status != domain.BookingPending {
		t.Errorf("Status = %q, want pending", created.Status)
	}
	if stored.UserID != 42 {
		t.Errorf("UserID = %d, want 42", stored.UserID)
	}
}

func TestBookingCreateUnknownProperty(t *testing.T) {
	properties := &mockPropertiesRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Property, error) {
			return nil, nil
		},
	}
	svc := NewBookingService(&mockBookingsRepo{}, properties, events.NoopPublisher{})

	req := &domain.CreateBookingRequest{PropertyID: 99, CheckIn: "2024-06-01", CheckOut: "2024-06-06", Guests: 2}
	_, err := svc.Create(context.Background(), 42, req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBookingCreateDateConflict(t *testing.T) {
	bookings := &mockBookingsRepo{
		create: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			return nil, domain.ErrDatesUnavailable
		},
	}
	properties := &mockPropertiesRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Property, error) {
			return testProperty(), nil
		},
	}
	svc := NewBookingService(bookings, properties, events.NoopPublisher{})

	req := &domain.CreateBookingRequest{PropertyID: 7, CheckIn: "2024-06-01", CheckOut: "2024-06-06", Guests: 2}
	_, err := svc.Create(context.Background(), 42, req)
	if !errors.Is(err, domain.ErrDatesUnavailable) {
		t.Errorf("err = %v, want ErrDatesUnavailable", err)
	}
}

func TestBookingGetOwnership(t *testing.T) {
	bookings := &mockBookingsRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{ID: id, UserID: 42, Status: domain.BookingConfirmed}, nil
		},
	}
	svc := NewBookingService(bookings, &mockPropertiesRepo{}, events.NoopPublisher{})

	if _, err := svc.Get(context.Background(), 42, 1); err != nil {
		t.Errorf("owner should see the booking: %v", err)
	}
	if _, err := svc.Get(context.Background(), 13, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestBookingCancelGuards(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		caller  int64
		wantErr error
	}{
		{"unknown booking", nil, 42, domain.ErrNotFound},
		{"wrong owner", &domain.Booking{ID: 1, UserID: 42, Status: domain.BookingPending}, 13, domain.ErrForbidden},
		{"already cancelled", &domain.Booking{ID: 1, UserID: 42, Status: domain.BookingCancelled}, 42, domain.ErrNotCancellable},
		{"completed", &domain.Booking{ID: 1, UserID: 42, Status: domain.BookingCompleted}, 42, domain.ErrNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingsRepo{
				getByID: func(ctx context.Context, id int64) (*domain.Booking, error) {
					return tt.booking, nil
				},
			}
			svc := NewBookingService(bookings, &mockPropertiesRepo{}, events.NoopPublisher{})

			_, err := svc.Cancel(context.Background(), tt.caller, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookingCancelSucceeds(t *testing.T) {
	bookings := &mockBookingsRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{ID: id, UserID: 42, Status: domain.BookingConfirmed}, nil
		},
		cancel: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{ID: id, UserID: 42, Status: domain.BookingCancelled}, nil
		},
	}
	svc := NewBookingService(bookings, &mockPropertiesRepo{}, events.NoopPublisher{})

	cancelled, err := svc.Cancel(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != domain.BookingCancelled {
		t.Errorf("Status = %q, want cancelled", cancelled.Status)
	}
}

func TestBookingCancelRace(t *testing.T) {
	// The status flipped between the guard check and the update.
	bookings := &mockBookingsRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{ID: id, UserID: 42, Status: domain.BookingConfirmed}, nil
		},
		cancel: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := NewBookingService(bookings, &mockPropertiesRepo{}, events.NoopPublisher{})

	if _, err := svc.Cancel(context.Background(), 42, 1); !errors.Is(err, domain.ErrNotCancellable) {
		t.Errorf("err = %v, want ErrNotCancellable", err)
	}
}

func TestIsAvailable(t *testing.T) {
	bookings := &mockBookingsRepo{
		hasOverlap: func(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
			return propertyID == 7, nil
		},
	}
	svc := NewBookingService(bookings, &mockPropertiesRepo{}, events.NoopPublisher{})

	in, _ := domain.ParseDate("2024-06-01")
	out, _ := domain.ParseDate("2024-06-05")

	available, err := svc.IsAvailable(context.Background(), 7, in, out)
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if available {
		t.Error("overlapping range reported as available")
	}

	available, err = svc.IsAvailable(context.Background(), 8, in, out)
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if !available {
		t.Error("free range reported as unavailable")
	}
}
