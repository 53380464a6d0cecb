package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/mailer"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/pkg/auth"
	"github.com/stayviet/stayviet/pkg/config"
	"github.com/stayviet/stayviet/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) (*domain.UserInfo, error)
	Get(ctx context.Context, id int64) (*domain.UserInfo, error)
	UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.UserInfo, error)
	AddFavorite(ctx context.Context, userID, propertyID int64) error
	RemoveFavorite(ctx context.Context, userID, propertyID int64) error
}

type userService struct {
	users      postgres.UsersRepo
	properties postgres.PropertiesRepo
	mailer     mailer.Service
	config     *config.Config
}

func NewUserService(users postgres.UsersRepo, properties postgres.PropertiesRepo, m mailer.Service, cfg *config.Config) UserService {
	return &userService{
		users:      users,
		properties: properties,
		mailer:     m,
		config:     cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique index on lower(email) makes the duplicate check race-free.
	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash, domain.DefaultAvatar)
	if err != nil {
		return nil, err
	}

	// Email verification is best effort: registration succeeds even when
	// the token or the email cannot be produced.
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.config.Auth.EmailVerificationTTL)
	if err := s.users.CreateEmailVerification(ctx, user.ID, token, expiresAt); err != nil {
		logger.ErrorContext(ctx, "failed to create email verification token", "error", err, "user_id", user.ID)
	} else {
		verifyURL := fmt.Sprintf("%s?token=%s", s.config.Email.VerifyBaseURL, token)
		if err := s.mailer.SendVerificationEmail(user.Email, user.Name, verifyURL); err != nil {
			logger.ErrorContext(ctx, "failed to send verification email", "error", err, "user_id", user.ID)
		}
	}

	return s.loginResponse(user)
}

func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return s.loginResponse(user)
}

func (s *userService) loginResponse(user *domain.User) (*domain.LoginResponse, error) {
	token, err := auth.NewAccessToken(
		user.ID,
		user.Email,
		user.Role,
		s.config.Auth.JWTSecret,
		s.config.Auth.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	return &domain.LoginResponse{Token: token, User: user.Info()}, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (*domain.UserInfo, error) {
	userID, err := s.users.ConsumeEmailVerification(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}
	if userID == 0 {
		return nil, domain.Invalid("invalid or expired verification token")
	}

	if err := s.users.MarkEmailVerified(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	return s.Get(ctx, userID)
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.UserInfo, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user.Info(), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.UserInfo, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user.Info(), nil
}

func (s *userService) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return domain.ErrNotFound
	}
	return s.users.AddFavorite(ctx, userID, propertyID)
}

func (s *userService) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	return s.users.RemoveFavorite(ctx, userID, propertyID)
}
