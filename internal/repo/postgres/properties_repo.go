package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayviet/stayviet/internal/domain"
)

type PropertiesRepo interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	UpdateRating(ctx context.Context, id int64, s domain.RatingSummary) error
}

type PropertiesRepoImpl struct{ pool *pgxpool.Pool }

func NewPropertiesRepo(pool *pgxpool.Pool) *PropertiesRepoImpl {
	return &PropertiesRepoImpl{pool: pool}
}

const propertyCols = `id, title, description, price, category,
rating, review_count,
score_cleanliness, score_accuracy, score_communication, score_location, score_check_in, score_value,
images, address, city, country, amenities,
host_name, host_avatar, host_joined, host_reviews, host_is_superhost,
max_guests, bedrooms, bathrooms, area, is_available, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
		&p.Rating, &p.ReviewCount,
		&p.Scores.Cleanliness, &p.Scores.Accuracy, &p.Scores.Communication,
		&p.Scores.Location, &p.Scores.CheckIn, &p.Scores.Value,
		&p.Images, &p.Location.Address, &p.Location.City, &p.Location.Country, &p.Amenities,
		&p.Host.Name, &p.Host.Avatar, &p.Host.Joined, &p.Host.Reviews, &p.Host.IsSuperhost,
		&p.MaxGuests, &p.Bedrooms, &p.Bathrooms, &p.Area, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertiesRepoImpl) List(ctx context.Context) ([]domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, rows.Err()
}

func (r *PropertiesRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PropertiesRepoImpl) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	const q = `INSERT INTO properties (
    title, description, price, category, images,
    address, city, country, amenities,
    host_name, host_avatar, host_joined, host_reviews, host_is_superhost,
    max_guests, bedrooms, bathrooms, area, is_available
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
  RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q,
		p.Title, p.Description, p.Price, p.Category, p.Images,
		p.Location.Address, p.Location.City, p.Location.Country, p.Amenities,
		p.Host.Name, p.Host.Avatar, p.Host.Joined, p.Host.Reviews, p.Host.IsSuperhost,
		p.MaxGuests, p.Bedrooms, p.Bathrooms, p.Area, p.IsAvailable,
	))
}

// UpdateRating writes the recomputed aggregate back onto the property.
// Returns domain.ErrNotFound when the property no longer exists; the caller
// decides whether that is fatal.
func (r *PropertiesRepoImpl) UpdateRating(ctx context.Context, id int64, s domain.RatingSummary) error {
	const q = `UPDATE properties SET
    rating=$2, review_count=$3,
    score_cleanliness=$4, score_accuracy=$5, score_communication=$6,
    score_location=$7, score_check_in=$8, score_value=$9,
    updated_at=now()
  WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id,
		s.Rating, s.ReviewCount,
		s.Scores.Cleanliness, s.Scores.Accuracy, s.Scores.Communication,
		s.Scores.Location, s.Scores.CheckIn, s.Scores.Value,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
