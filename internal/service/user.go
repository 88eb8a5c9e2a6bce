package service

import (
	"context"
	"fmt"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context, search string) ([]domain.User, error)
	UpdateStatusByEmail(ctx context.Context, email, status string) (int64, error)
	UpdateRole(ctx context.Context, id uint, role, status string) (domain.User, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// ApplyForCreator flags the account for admin review. Applying twice is
// harmless, the status just stays pending.
func (s *UserService) ApplyForCreator(ctx context.Context, email string) error {
	affected, err := s.repo.UpdateStatusByEmail(ctx, email, domain.CreatorStatusPending)
	if err != nil {
		return fmt.Errorf("s.repo.UpdateStatusByEmail -> %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateRole sets the role by admin decision. Promoting to creator also
// marks the creator application approved.
func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) (domain.User, error) {
	status := domain.CreatorStatusNone
	if role == domain.RoleCreator {
		status = domain.CreatorStatusApproved
	}

	user, err := s.repo.UpdateRole(ctx, id, role, status)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
