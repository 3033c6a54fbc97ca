// Package auth keeps the in-memory account store and issues the JWT
// bearer tokens used by the HTTP API.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zr-chat/relay/internal/model/user"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const bcryptCost = 10

// tokenTTL bounds token lifetime; the HTTP clients re-login on 403.
const tokenTTL = 24 * time.Hour

// Claims carried by every issued token.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service registers users, verifies credentials, and mints tokens.
type Service struct {
	mu     sync.RWMutex
	users  map[string]user.User
	secret []byte
}

// NewService bootstraps an empty user store signing with secret.
func NewService(secret string) *Service {
	return &Service{
		users:  make(map[string]user.User),
		secret: []byte(secret),
	}
}

// Register creates an account and returns a signed token plus the
// public user view.
func (s *Service) Register(username, password string) (string, user.Public, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", user.Public{}, err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}

	s.mu.Lock()
	if _, exists := s.users[username]; exists {
		s.mu.Unlock()
		return "", user.Public{}, ErrUsernameTaken
	}
	s.users[username] = u
	s.mu.Unlock()

	token, err := s.sign(u)
	if err != nil {
		return "", user.Public{}, err
	}
	return token, u.Public(), nil
}

// Login verifies the credentials and returns a fresh token.
func (s *Service) Login(username, password string) (string, user.Public, error) {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		return "", user.Public{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", user.Public{}, ErrInvalidCredentials
	}

	token, err := s.sign(u)
	if err != nil {
		return "", user.Public{}, err
	}
	return token, u.Public(), nil
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(u user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
