package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"candidate-tracker-backend/internal/domain"
	"candidate-tracker-backend/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps the bcrypt comparison on the unknown-username path so its
// timing matches the wrong-password path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type authUsecase struct {
	userRepo  domain.UserRepository
	tokenRepo domain.TokenRepository
	tokenTTL  time.Duration // zero means tokens never expire
}

func NewAuthUsecase(userRepo domain.UserRepository, tokenRepo domain.TokenRepository, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokenTTL:  tokenTTL,
	}
}

func generateToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(tokenBytes), nil
}

// Login authenticates a recruiter and returns their bearer token. Unknown
// username and wrong password are indistinguishable to the caller. Token
// issuance is idempotent: an existing live token is returned verbatim.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, apperror.Unauthorized("Invalid credentials")
		}
		return "", nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("Invalid credentials")
	}

	if !user.IsActive {
		return "", nil, apperror.Forbidden("User account is disabled")
	}

	now := time.Now()

	existing, err := u.tokenRepo.GetByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, apperror.Internal(err)
	}
	if existing != nil && !existing.Expired(now) {
		return existing.Token, user, nil
	}

	token, err := generateToken()
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	t := &domain.AuthToken{Token: token, UserID: user.ID}
	if u.tokenTTL > 0 {
		expires := now.Add(u.tokenTTL)
		t.ExpiresAt = &expires
	}
	if err := u.tokenRepo.Save(ctx, t); err != nil {
		return "", nil, apperror.Internal(err)
	}

	return token, user, nil
}

// Logout deletes the caller's own token. The identity comes from the bearer
// token that authenticated this request, so a missing row is a runtime
// failure, not a validation condition.
func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.tokenRepo.DeleteByUser(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Authenticate resolves a presented bearer token to its owner.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Invalid token")
	}
	user, err := u.tokenRepo.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid token")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
