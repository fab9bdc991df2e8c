package user

import (
	"context"
	"errors"
	"testing"

	"github.com/tunagu-ab/tunagatya-app/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type recordingNotifier struct {
	emails []string
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, email, username string) error {
	n.emails = append(n.emails, email)
	return nil
}

const testSecret = "service-test-secret"

func TestService_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.Anything, "member").Return(&User{
			ID:    1,
			Name:  "New User",
			Email: "new@example.com",
			Role:  "member",
		}, nil)

		svc := NewService(repo, testSecret, nil)

		user, accessToken, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		repo.AssertExpectations(t)
	})

	t.Run("queues welcome email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.Anything, "member").Return(&User{
			ID:    1,
			Name:  "New User",
			Email: "new@example.com",
			Role:  "member",
		}, nil)

		notifier := &recordingNotifier{}
		svc := NewService(repo, testSecret, notifier)

		_, _, _, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"new@example.com"}, notifier.emails)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		svc := NewService(repo, testSecret, nil)

		user, _, _, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Dup",
			Email:    "taken@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		assert.Nil(t, user)
	})
}

func TestService_Login(t *testing.T) {
	hash, _ := auth.HashPassword("correct-password")

	t.Run("successful login", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(&User{
			ID:           2,
			Email:        "user@example.com",
			PasswordHash: hash,
			Role:         "member",
		}, nil)

		svc := NewService(repo, testSecret, nil)

		user, accessToken, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, user.ID)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(&User{
			ID:           2,
			Email:        "user@example.com",
			PasswordHash: hash,
		}, nil)

		svc := NewService(repo, testSecret, nil)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, errors.New("no rows"))

		svc := NewService(repo, testSecret, nil)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, 3).Return(&User{
		ID:    3,
		Email: "user@example.com",
		Role:  "member",
	}, nil)

	svc := NewService(repo, testSecret, nil)

	refreshToken, err := auth.GenerateRefreshToken(3, "user@example.com", "member", testSecret)
	assert.NoError(t, err)

	newAccess, user, err := svc.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.Equal(t, 3, user.ID)
}
