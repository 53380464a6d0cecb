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

type UsersRepo interface {
	// Create returns domain.ErrEmailTaken when the email is already in use.
	Create(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error)
	CreateEmailVerification(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	// ConsumeEmailVerification returns 0 when the token is unknown or expired.
	ConsumeEmailVerification(ctx context.Context, token string) (int64, error)
	MarkEmailVerified(ctx context.Context, userID int64) error
	AddFavorite(ctx context.Context, userID, propertyID int64) error
	RemoveFavorite(ctx context.Context, userID, propertyID int64) error
}

type UsersRepoImpl struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepoImpl { return &UsersRepoImpl{pool: pool} }

// favorites ride along as an aggregated array so every read path returns a
// complete user.
const userCols = `u.id, u.name, u.email, u.password_hash, u.avatar, u.role, u.email_verified,
COALESCE((SELECT array_agg(f.property_id ORDER BY f.created_at) FROM favorites f WHERE f.user_id = u.id), '{}'),
u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.Role, &u.EmailVerified,
		&u.Favorites, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) Create(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error) {
	const q = `WITH ins AS (
    INSERT INTO users (name, email, password_hash, avatar)
    VALUES ($1,$2,$3,$4)
    RETURNING *
  ) SELECT ` + userCols + ` FROM ins u`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, name, email, passwordHash, avatar))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *UsersRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users u WHERE lower(u.email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UsersRepoImpl) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users u WHERE u.id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UsersRepoImpl) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	const q = `WITH upd AS (
    UPDATE users SET
      name   = COALESCE($2, name),
      email  = COALESCE($3, email),
      avatar = COALESCE($4, avatar),
      updated_at = now()
    WHERE id=$1
    RETURNING *
  ) SELECT ` + userCols + ` FROM upd u`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, id, req.Name, req.Email, req.Avatar))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *UsersRepoImpl) CreateEmailVerification(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO email_verifications (token, user_id, expires_at) VALUES ($1,$2,$3)`,
		token, userID, expiresAt,
	)
	return err
}

func (r *UsersRepoImpl) ConsumeEmailVerification(ctx context.Context, token string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var userID int64
	err := r.pool.QueryRow(ctx,
		`DELETE FROM email_verifications WHERE token=$1 AND expires_at > now() RETURNING user_id`,
		token,
	).Scan(&userID)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return userID, err
}

func (r *UsersRepoImpl) MarkEmailVerified(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email_verified=TRUE, updated_at=now() WHERE id=$1`, userID)
	return err
}

func (r *UsersRepoImpl) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, property_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		userID, propertyID,
	)
	return err
}

func (r *UsersRepoImpl) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND property_id=$2`,
		userID, propertyID,
	)
	return err
}
