package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"home_inventory/internal/models"
	"home_inventory/internal/repository"
)

// defaultTokenTTL is the fixed session lifetime used when config leaves it unset.
const defaultTokenTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so a login attempt cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is the single failure kind for malformed, badly signed
	// and expired tokens; callers cannot tell the causes apart.
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrValidation   = errors.New("validation failed")
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{users: users, signingKey: cfg.SigningKey, tokenTTL: ttl}
}

// Claims defines JWT claims. "user_id" is the canonical subject claim and is
// the only place the authenticated identity is carried.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// SignUp normalizes the email, hashes the password and creates the user.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, email, hash)
}

// GenerateToken validates credentials and returns a signed JWT plus the user.
func (s *AuthService) GenerateToken(ctx context.Context, email, password string) (string, *models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ParseToken verifies a JWT and returns the embedded user id.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// issueToken signs a time-bounded JWT for a user.
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// normalizeEmail trims and lowercases the address; uniqueness is checked
// against the normalized form.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	return email, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash (constant-time under the hood)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
