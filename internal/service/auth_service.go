package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/model"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
)

// DemoUserID is the fixed identifier of the only account that can log in.
const DemoUserID = "demo-user-1"

// Claims carries the teacher profile inside the bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	Name   string `json:"name"`
	School string `json:"school"`
	Role   string `json:"role"`
}

// AuthService mints and validates HS256 profile tokens and checks the demo
// credential pair. No account storage exists behind it.
type AuthService struct {
	cfg      *config.Config
	demoHash []byte
}

// NewAuthService creates an AuthService. The demo password is hashed once
// at startup so login compares against a bcrypt digest, not plaintext.
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &AuthService{cfg: cfg, demoHash: hash}, nil
}

// Login validates the demo credential pair and returns a fresh token with
// the fixed demo profile.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	if email != s.cfg.DemoEmail {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user := s.DemoProfile()
	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// DemoProfile builds the fixed demo teacher profile.
func (s *AuthService) DemoProfile() model.User {
	return model.User{
		ID:        DemoUserID,
		Email:     s.cfg.DemoEmail,
		Name:      s.cfg.DemoName,
		School:    s.cfg.DemoSchool,
		Role:      "teacher",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		IsActive:  true,
	}
}

// GenerateToken signs a token embedding the profile with the configured
// expiry (24h by default).
func (s *AuthService) GenerateToken(user model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
		},
		Email:  user.Email,
		Name:   user.Name,
		School: user.School,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a bearer token, returning the claims.
// Expired tokens surface ErrTokenExpired; everything else that fails to
// decode surfaces ErrTokenInvalid.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ProfileFromClaims rebuilds the profile object a token decodes to.
func (s *AuthService) ProfileFromClaims(claims *Claims) model.User {
	return model.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		School:    claims.School,
		Role:      claims.Role,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		IsActive:  true,
	}
}
