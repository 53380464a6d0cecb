package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayviet/stayviet/internal/domain"
)

type BookingsRepo interface {
	// Create runs the availability check and the insert in one transaction.
	// Returns domain.ErrDatesUnavailable when an active booking overlaps.
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasOverlap(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	// Cancel flips a pending/confirmed booking to cancelled. Returns
	// (nil, nil) when the booking was not in a cancellable state.
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
}

type BookingsRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingsRepo(pool *pgxpool.Pool) *BookingsRepoImpl {
	return &BookingsRepoImpl{pool: pool}
}

const bookingCols = `id, property_id, user_id, check_in, check_out,
guests, total_price, status, created_at, updated_at`

// Inclusive-bound overlap: existing.check_in <= requested.check_out AND
// existing.check_out >= requested.check_in, over active bookings only.
const overlapQuery = `SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE property_id = $1
    AND status IN ('pending','confirmed')
    AND check_in <= $3
    AND check_out >= $2
)`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.UserID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingsRepoImpl) Create(ctx context.Context, in *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var conflict bool
	if err := tx.QueryRow(ctx, overlapQuery, in.PropertyID, in.CheckIn, in.CheckOut).Scan(&conflict); err != nil {
		return nil, err
	}
	if conflict {
		return nil, domain.ErrDatesUnavailable
	}

	const q = `INSERT INTO bookings (property_id, user_id, check_in, check_out, guests, total_price, status)
  VALUES ($1,$2,$3,$4,$5,$6,'pending')
  RETURNING ` + bookingCols

	b, err := scanBooking(tx.QueryRow(ctx, q,
		in.PropertyID, in.UserID, in.CheckIn, in.CheckOut, in.Guests, in.TotalPrice,
	))
	if err != nil {
		// The exclusion constraint catches the racing insert that slipped
		// past the in-transaction check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return nil, domain.ErrDatesUnavailable
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingsRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *BookingsRepoImpl) HasOverlap(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var conflict bool
	err := r.pool.QueryRow(ctx, overlapQuery, propertyID, checkIn, checkOut).Scan(&conflict)
	return conflict, err
}

func (r *BookingsRepoImpl) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0, limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, rows.Err()
}

func (r *BookingsRepoImpl) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `UPDATE bookings SET status='cancelled', updated_at=now()
  WHERE id=$1 AND status IN ('pending','confirmed')
  RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}
