package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"shopapi/internal/hash"
	"shopapi/internal/logging"
	"shopapi/internal/repo"
	"shopapi/internal/tokens"
	"shopapi/internal/transport"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	Users     *UserService
	JWTSecret []byte
}

func (s *AuthService) CreateAccessToken(userID uint, email string, exp time.Time) (string, error) {
	claims := tokens.AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*transport.UserSummary, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	user, err := s.Users.Create(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			l.Warn("register_conflict", "email", NormalizeEmail(email))
			return nil, ErrEmailTaken
		}
		l.Error("register_failed", "error", err)
		return nil, ErrUserCreateFailed
	}

	return &transport.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Login never distinguishes "no such user" from "wrong password": both
// come back as the same invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmailWithPassword(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	accessToken, err := s.CreateAccessToken(user.ID, user.Email, time.Now().Add(accessTokenTTL))
	if err != nil {
		l.Error("login_failed", "error", err)
		return "", err
	}

	return accessToken, nil
}
