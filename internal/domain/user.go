package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

var validRoles = map[string]bool{
	RoleUser:  true,
	RoleHost:  true,
	RoleAdmin: true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

const DefaultAvatar = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=150"

type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Avatar        string    `json:"avatar"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"isEmailVerified"`
	Favorites     []int64   `json:"favorites"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserInfo is the public projection of a user. The password hash never
// leaves the repo layer.
type UserInfo struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Avatar        string  `json:"avatar"`
	Role          string  `json:"role"`
	EmailVerified bool    `json:"isEmailVerified"`
	Favorites     []int64 `json:"favorites"`
}

func (u *User) Info() *UserInfo {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []int64{}
	}
	return &UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Avatar:        u.Avatar,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		Favorites:     favorites,
	}
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return Invalid("name is required")
	}
	if len(r.Name) > 50 {
		return Invalid("name must be at most 50 characters")
	}
	if r.Email == "" {
		return Invalid("email is required")
	}
	if !isValidEmail(r.Email) {
		return Invalid("invalid email format")
	}
	if r.Password == "" {
		return Invalid("password is required")
	}
	if len(r.Password) < 6 {
		return Invalid("password must be at least 6 characters")
	}
	if r.Password != r.PasswordConfirm {
		return Invalid("password confirmation does not match")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return Invalid("email is required")
	}
	if r.Password == "" {
		return Invalid("password is required")
	}
	return nil
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return Invalid("name cannot be empty")
	}
	if r.Name != nil && len(*r.Name) > 50 {
		return Invalid("name must be at most 50 characters")
	}
	if r.Email != nil && !isValidEmail(*r.Email) {
		return Invalid("invalid email format")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
