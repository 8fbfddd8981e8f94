package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"profitfy/internal/cache"
	"profitfy/internal/model"
	"profitfy/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ErrUserAlreadyExists is returned when registering an email that is taken.
var ErrUserAlreadyExists = errors.New("user already exists")

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserService exposes registration and profile reads.
type UserService interface {
	Register(ctx context.Context, name, surname, email, phone, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher PasswordHasher
	cache  *cache.Client
}

// NewUserService builds a UserService with repository, hasher and cache.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, cache *cache.Client) UserService {
	return &userService{repo: repo, hasher: hasher, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a new user with a hashed password.
func (s *userService) Register(ctx context.Context, name, surname, email, phone, password string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// GetUser reads a user by id, caching the result.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}
