package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

const minPasswordLen = 6

// UserService defines account and identity use cases: registration, login
// and the email <-> id lookups the sharing flow relies on.
type UserService interface {
	// Register creates a new account. The email column carries no uniqueness
	// constraint, so the service checks for an existing account first.
	Register(ctx context.Context, email, password string) (*model.User, error)

	// Login verifies the credentials and returns a signed bearer token whose
	// subject is the user ID.
	Login(ctx context.Context, email, password string) (string, error)

	// ResolveEmail returns the user matching the email, first match wins.
	ResolveEmail(ctx context.Context, email string) (*model.User, error)

	// EmailOf returns the email of the user with the given ID.
	EmailOf(ctx context.Context, userID string) (string, error)
}

type userService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewUserService constructs a new UserService. The secret signs bearer
// tokens; tokenTTL bounds their lifetime.
func NewUserService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) UserService {
	return &userService{users: users, secret: secret, tokenTTL: tokenTTL}
}

func (s *userService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *userService) ResolveEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *userService) EmailOf(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrIDRequired
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	return user.Email, nil
}
