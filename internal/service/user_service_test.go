package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/pkg/config"
)

type mockUsersRepo struct {
	create             func(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error)
	findByEmail        func(ctx context.Context, email string) (*domain.User, error)
	findByID           func(ctx context.Context, id int64) (*domain.User, error)
	updateProfile      func(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error)
	createVerification func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	consume            func(ctx context.Context, token string) (int64, error)
	markVerified       func(ctx context.Context, userID int64) error
	addFavorite        func(ctx context.Context, userID, propertyID int64) error
	removeFavorite     func(ctx context.Context, userID, propertyID int64) error
}

func (m *mockUsersRepo) Create(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error) {
	return m.create(ctx, name, email, passwordHash, avatar)
}

func (m *mockUsersRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findByEmail(ctx, email)
}

func (m *mockUsersRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.findByID(ctx, id)
}

func (m *mockUsersRepo) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	return m.updateProfile(ctx, id, req)
}

func (m *mockUsersRepo) CreateEmailVerification(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return m.createVerification(ctx, userID, token, expiresAt)
}

func (m *mockUsersRepo) ConsumeEmailVerification(ctx context.Context, token string) (int64, error) {
	return m.consume(ctx, token)
}

func (m *mockUsersRepo) MarkEmailVerified(ctx context.Context, userID int64) error {
	return m.markVerified(ctx, userID)
}

func (m *mockUsersRepo) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	return m.addFavorite(ctx, userID, propertyID)
}

func (m *mockUsersRepo) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	return m.removeFavorite(ctx, userID, propertyID)
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendVerificationEmail(toEmail, toName, verifyURL string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			AccessTokenTTL:       time.Hour,
			EmailVerificationTTL: time.Hour,
		},
		Email: config.EmailConfig{
			VerifyBaseURL: "http://localhost:8080/api/auth/verify",
		},
	}
}

func TestRegisterIssuesTokenAndSendsVerification(t *testing.T) {
	users := &mockUsersRepo{
		create: func(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error) {
			if passwordHash == "secret123" {
				t.Error("password stored in plaintext")
			}
			return &domain.User{ID: 1, Name: name, Email: email, Role: domain.RoleUser, PasswordHash: passwordHash}, nil
		},
		createVerification: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
			return nil
		},
	}
	mail := &mockMailer{}
	svc := NewUserService(users, &mockPropertiesRepo{}, mail, testConfig())

	req := &domain.RegisterRequest{Name: "Alice", Email: "Alice@Example.com", Password: "secret123", PasswordConfirm: "secret123"}
	res, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("expected an access token")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", res.User.Email)
	}
	if len(mail.sent) != 1 {
		t.Errorf("verification emails sent = %d, want 1", len(mail.sent))
	}
}

func TestRegisterSurvivesMailerFailure(t *testing.T) {
	users := &mockUsersRepo{
		create: func(ctx context.Context, name, email, passwordHash, avatar string) (*domain.User, error) {
			return &domain.User{ID: 1, Name: name, Email: email, Role: domain.RoleUser}, nil
		},
		createVerification: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
			return nil
		},
	}
	mail := &mockMailer{err: errors.New("smtp down")}
	svc := NewUserService(users, &mockPropertiesRepo{}, mail, testConfig())

	req := &domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", PasswordConfirm: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("registration should not fail on mailer error: %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := argon2id.CreateHash("secret123", argon2id.DefaultParams)
	if err != nil {
		t.Fatal(err)
	}
	users := &mockUsersRepo{
		findByEmail: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "alice@example.com" {
				return nil, nil
			}
			return &domain.User{ID: 1, Email: email, Role: domain.RoleUser, PasswordHash: hash}, nil
		},
	}
	svc := NewUserService(users, &mockPropertiesRepo{}, &mockMailer{}, testConfig())

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "alice@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if res.Token == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "alice@example.com", Password: "nope12"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "bob@example.com", Password: "secret123"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestVerifyEmail(t *testing.T) {
	users := &mockUsersRepo{
		consume: func(ctx context.Context, token string) (int64, error) {
			if token == "good" {
				return 1, nil
			}
			return 0, nil
		},
		markVerified: func(ctx context.Context, userID int64) error { return nil },
		findByID: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Email: "alice@example.com", EmailVerified: true}, nil
		},
	}
	svc := NewUserService(users, &mockPropertiesRepo{}, &mockMailer{}, testConfig())

	if _, err := svc.VerifyEmail(context.Background(), "good"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if _, err := svc.VerifyEmail(context.Background(), "expired"); !domain.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestAddFavoriteUnknownProperty(t *testing.T) {
	properties := &mockPropertiesRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Property, error) {
			return nil, nil
		},
	}
	svc := NewUserService(&mockUsersRepo{}, properties, &mockMailer{}, testConfig())

	if err := svc.AddFavorite(context.Background(), 1, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
