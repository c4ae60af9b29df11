package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the authenticated user placed in the request
// context by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// User is the authenticated identity threaded through handlers and services.
type User struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Clearance     clearance.Level `json:"clearance_level"`
	DepartmentIDs []int64         `json:"department_ids,omitempty"`
	RankID        int64           `json:"rank_id,omitempty"`
}

// Identity projects the user onto the access evaluator's input shape. The
// identity is always passed explicitly into core functions, never read from
// ambient state.
func (u *User) Identity() access.Identity {
	return access.Identity{
		UserID:        u.ID,
		Clearance:     u.Clearance,
		DepartmentIDs: u.DepartmentIDs,
		RankID:        u.RankID,
	}
}

func (u *User) IsAdministrator() bool {
	return u.Clearance.IsAdministrator()
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates tokens and expiration times.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrForbidden          = errors.New("forbidden")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
