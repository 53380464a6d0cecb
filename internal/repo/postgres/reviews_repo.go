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

type ReviewsRepo interface {
	// Create returns domain.ErrDuplicateReview when the (booking, user)
	// pair already has a review.
	Create(ctx context.Context, rv *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	ExistsForBooking(ctx context.Context, bookingID, userID int64) (bool, error)
	ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, int, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	AggregateForProperty(ctx context.Context, propertyID int64) (domain.RatingSummary, error)
}

type ReviewsRepoImpl struct{ pool *pgxpool.Pool }

func NewReviewsRepo(pool *pgxpool.Pool) *ReviewsRepoImpl {
	return &ReviewsRepoImpl{pool: pool}
}

const reviewCols = `id, property_id, user_id, booking_id, rating, comment,
cleanliness, accuracy, communication, location, check_in, value,
images, is_recommended, created_at`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.PropertyID, &rv.UserID, &rv.BookingID, &rv.Rating, &rv.Comment,
		&rv.Categories.Cleanliness, &rv.Categories.Accuracy, &rv.Categories.Communication,
		&rv.Categories.Location, &rv.Categories.CheckIn, &rv.Categories.Value,
		&rv.Images, &rv.IsRecommended, &rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewsRepoImpl) Create(ctx context.Context, in *domain.Review) (*domain.Review, error) {
	const q = `INSERT INTO reviews (
    property_id, user_id, booking_id, rating, comment,
    cleanliness, accuracy, communication, location, check_in, value,
    images, is_recommended
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
  RETURNING ` + reviewCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	images := in.Images
	if images == nil {
		images = []string{}
	}

	rv, err := scanReview(r.pool.QueryRow(ctx, q,
		in.PropertyID, in.UserID, in.BookingID, in.Rating, in.Comment,
		in.Categories.Cleanliness, in.Categories.Accuracy, in.Categories.Communication,
		in.Categories.Location, in.Categories.CheckIn, in.Categories.Value,
		images, in.IsRecommended,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewsRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rv, err := scanReview(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rv, err
}

func (r *ReviewsRepoImpl) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewsRepoImpl) ExistsForBooking(ctx context.Context, bookingID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id=$1 AND user_id=$2)`,
		bookingID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *ReviewsRepoImpl) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM reviews WHERE property_id=$1`, propertyID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE property_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, propertyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rvs := make([]domain.Review, 0, limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		rvs = append(rvs, *rv)
	}
	return rvs, total, rows.Err()
}

func (r *ReviewsRepoImpl) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE user_id=$1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rvs []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		rvs = append(rvs, *rv)
	}
	return rvs, rows.Err()
}

// AggregateForProperty computes the mean rating, the review count and the
// six category means over all reviews of a property. AVG ignores NULL
// sub-ratings, so a missing category score is excluded from its mean rather
// than counted as zero; with zero reviews every aggregate is zero.
func (r *ReviewsRepoImpl) AggregateForProperty(ctx context.Context, propertyID int64) (domain.RatingSummary, error) {
	const q = `SELECT
    COALESCE(AVG(rating), 0),
    COUNT(*),
    COALESCE(AVG(cleanliness), 0),
    COALESCE(AVG(accuracy), 0),
    COALESCE(AVG(communication), 0),
    COALESCE(AVG(location), 0),
    COALESCE(AVG(check_in), 0),
    COALESCE(AVG(value), 0)
  FROM reviews WHERE property_id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.RatingSummary
	err := r.pool.QueryRow(ctx, q, propertyID).Scan(
		&s.Rating, &s.ReviewCount,
		&s.Scores.Cleanliness, &s.Scores.Accuracy, &s.Scores.Communication,
		&s.Scores.Location, &s.Scores.CheckIn, &s.Scores.Value,
	)
	return s, err
}
