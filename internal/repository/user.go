package repository

import (
	"context"
	"fmt"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context, search string) ([]dao.User, error)
	UpdateStatusByEmail(ctx context.Context, email, status string) (int64, error)
	UpdateRole(ctx context.Context, id uint, role, status string) (dao.User, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context, search string) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) UpdateStatusByEmail(ctx context.Context, email, status string) (int64, error) {
	affected, err := r.dao.UpdateStatusByEmail(ctx, email, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateStatusByEmail -> %w", err)
	}

	return affected, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role, status string) (domain.User, error) {
	updated, err := r.dao.UpdateRole(ctx, id, role, status)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	affected, err := r.dao.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return affected, nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:       u.ID,
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Photo:    u.Photo,
		Role:     u.Role,
		Status:   u.Status,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Photo:     u.Photo,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}

	return result
}
