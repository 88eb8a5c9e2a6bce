package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository"
)

type mockAuthUserRepo struct {
	mock.Mock
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("hashes the password and forces the participant role", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			if u.Role != domain.RoleUser || u.Status != domain.CreatorStatusNone {
				return false
			}

			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter22")) == nil
		})).Return(domain.User{ID: 1, Email: "alex@example.com", Role: domain.RoleUser}, nil)

		svc := NewAuthService(repo)

		created, err := svc.Signup(context.Background(), domain.User{
			Email:    "alex@example.com",
			Password: "hunter22",
			Name:     "Alex",
			Role:     domain.RoleAdmin, // must be ignored
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, created.Role)
		repo.AssertExpectations(t)
	})

	t.Run("surfaces a duplicate email", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.User{}, repository.ErrUserEmailExists)

		svc := NewAuthService(repo)

		_, err := svc.Signup(context.Background(), domain.User{
			Email:    "alex@example.com",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("succeeds with the right password", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		repo.On("FindByEmail", mock.Anything, "alex@example.com").
			Return(domain.User{ID: 1, Email: "alex@example.com", Password: string(hash)}, nil)

		svc := NewAuthService(repo)

		user, err := svc.Login(context.Background(), "alex@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		repo.On("FindByEmail", mock.Anything, "alex@example.com").
			Return(domain.User{Email: "alex@example.com", Password: string(hash)}, nil)

		svc := NewAuthService(repo)

		_, err := svc.Login(context.Background(), "alex@example.com", "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(domain.User{}, repository.ErrUserNotFound)

		svc := NewAuthService(repo)

		_, err := svc.Login(context.Background(), "ghost@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
