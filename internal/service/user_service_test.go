package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"profitfy/internal/auth"
	"profitfy/internal/model"
)

func TestUserService_Register(t *testing.T) {
	hasher := auth.NewPasswordHasher(testArgon2)

	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "new@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "email already taken",
			email: "taken@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:  "store unreachable",
			email: "new@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, errors.New("dial tcp: connection refused"))
			},
			expectedError: errors.New("check user existence"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewUserService(repo, hasher, nil)

			user, err := svc.Register(context.Background(), "Ana", "Souza", tt.email, "+55 11 91234-0001", "secret123")

			switch {
			case tt.expectedError == nil:
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				// Stored hash is salted argon2id, never the plaintext.
				assert.NotEqual(t, "secret123", user.PasswordHash)
				assert.True(t, hasher.Compare("secret123", user.PasswordHash))
			case errors.Is(tt.expectedError, ErrUserAlreadyExists):
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
				assert.Nil(t, user)
			default:
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	hasher := auth.NewPasswordHasher(testArgon2)
	stored := &model.User{ID: 1, Name: "Ana", Surname: "Souza", Email: "a@x.com", Phone: "+55 11 91234-0001"}

	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewUserService(repo, hasher, nil)

	user, err := svc.GetUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
