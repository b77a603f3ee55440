package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// AuthToken is the opaque bearer credential for a recruiter. At most one
// active token exists per user; re-login reuses it.
type AuthToken struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the token never expires
}

func (t *AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type TokenRepository interface {
	GetByUser(ctx context.Context, userID string) (*AuthToken, error)
	// Save upserts the token row for the user, replacing any previous token.
	Save(ctx context.Context, token *AuthToken) error
	// GetUser resolves a presented token to its active, non-expired owner.
	GetUser(ctx context.Context, token string) (*User, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (string, *User, error)
	Logout(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, token string) (*User, error)
}
