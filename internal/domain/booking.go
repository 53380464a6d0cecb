package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// ActiveStatuses are the statuses that block other bookings on the same
// property and date range.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID         int64         `json:"id"`
	PropertyID int64         `json:"propertyId"`
	UserID     int64         `json:"userId"`
	CheckIn    time.Time     `json:"checkIn"`
	CheckOut   time.Time     `json:"checkOut"`
	Guests     int           `json:"guests"`
	TotalPrice int64         `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Overlaps reports whether the two date ranges conflict under the
// inclusive-bound policy: a stay ending on the same date another begins
// counts as a conflict.
func Overlaps(aCheckIn, aCheckOut, bCheckIn, bCheckOut time.Time) bool {
	return !aCheckIn.After(bCheckOut) && !aCheckOut.Before(bCheckIn)
}

func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// Nights returns the billed night count, rounding partial days up.
// Callers must reject ranges where checkOut is not after checkIn first.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

func (b *Booking) IsOwner(userID int64) bool {
	return b.UserID == userID
}

// CanCancel reports whether the booking may transition to cancelled.
// Cancelled and completed are terminal.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

const dateLayout = "2006-01-02"

// ParseDate accepts plain dates as sent by the browser client, falling back
// to RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

type CreateBookingRequest struct {
	PropertyID int64  `json:"propertyId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
}

// Dates parses and validates the requested range. checkOut must be strictly
// after checkIn so the night count can never be zero or negative.
func (r *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	if r.CheckIn == "" || r.CheckOut == "" {
		return time.Time{}, time.Time{}, Invalid("checkIn and checkOut are required")
	}
	checkIn, err = ParseDate(r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, Invalid("invalid checkIn date: %s", r.CheckIn)
	}
	checkOut, err = ParseDate(r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, Invalid("invalid checkOut date: %s", r.CheckOut)
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, Invalid("checkOut must be after checkIn")
	}
	return checkIn, checkOut, nil
}

func (r *CreateBookingRequest) Validate() error {
	if r.PropertyID <= 0 {
		return Invalid("propertyId is required")
	}
	if r.Guests < 1 {
		return Invalid("guests must be at least 1")
	}
	_, _, err := r.Dates()
	return err
}
