package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopapi/internal/hash"
	"shopapi/internal/logging"
	"shopapi/internal/models"
	"shopapi/internal/mykafka"
	"shopapi/internal/repo"
	"shopapi/internal/transport"
)

// UserService owns the user directory. Emails are the lookup key and are
// always stored normalized: lower-cased, surrounding whitespace trimmed.
type UserService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	event["event_id"] = uuid.NewString()
	key, _ := event["email"].(string)
	if err := s.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "user_events", "error", err)
	}
}

// Create always hashes the supplied password. There is no pre-hashed
// bypass: an import path would need its own authorized entry point.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "user_created", "user_id": user.ID, "email": user.Email})

	user.Password = ""
	return &user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateByEmail(ctx context.Context, email string, req transport.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.GetUserByEmailWithPassword(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		newEmail := NormalizeEmail(*req.Email)
		if newEmail != user.Email {
			if _, err := s.Repo.GetUserByEmail(ctx, newEmail); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = newEmail
		}
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "user_updated", "user_id": user.ID, "email": user.Email})

	user.Password = ""
	return user, nil
}

// DeleteByEmail removes the user and, via the cascade, every purchase
// they own.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) (*transport.UserSummary, error) {
	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.Repo.DeleteUserCascade(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "user_deleted", "user_id": user.ID, "email": user.Email})

	return &transport.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}
