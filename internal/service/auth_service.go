package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/apperr"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// User-facing auth messages.
const (
	msgUsernameTooShort   = "Username must be at least 3 characters"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

// AuthService handles account creation, credential checks and JWT lifecycle.
type AuthService struct {
	users  repository.Users
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repository.Users, cfg Config) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Claims is the JWT payload: identity plus the registered iat/exp set.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// SignUp validates the credentials, creates the user and returns a fresh
// token alongside the created record.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (string, models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return "", models.User{}, apperr.Invalid(msgUsernameTooShort)
	}
	if len(password) < minPasswordLen {
		return "", models.User{}, apperr.Invalid(msgPasswordTooShort)
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", models.User{}, err
	}
	if existing != nil {
		return "", models.User{}, apperr.Conflict(msgUsernameTaken)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", models.User{}, err
	}

	user, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return "", models.User{}, err
	}

	token, err := s.issueToken(user.ID, user.Username)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token. Unknown user
// and wrong password produce the same error, so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", models.User{}, err
	}
	if user == nil || verifyPassword(user.PasswordHash, password) != nil {
		return "", models.User{}, apperr.Unauthenticated(msgInvalidCredentials)
	}

	token, err := s.issueToken(user.ID, user.Username)
	if err != nil {
		return "", models.User{}, err
	}
	return token, *user, nil
}

// ParseToken validates a JWT and returns the identity it carries. Any
// failure (bad signature, malformed, expired) yields an error; the caller
// treats all of them as unauthenticated.
func (s *AuthService) ParseToken(accessToken string) (TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return TokenClaims{}, fmt.Errorf("invalid token")
	}
	return TokenClaims{UserID: claims.UserID, Username: claims.Username}, nil
}

// User loads the caller's own record by token-derived ID.
func (s *AuthService) User(ctx context.Context, id int) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperr.NotFound(msgUserNotFound)
	}
	return *user, nil
}

func (s *AuthService) issueToken(userID int, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Username: username,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
