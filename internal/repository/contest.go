package repository

import (
	"context"
	"fmt"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository/dao"
)

var (
	ErrContestNotFound        = dao.ErrContestNotFound
	ErrSubmissionNotInContest = dao.ErrSubmissionNotInContest
)

type ContestDAO interface {
	Insert(ctx context.Context, contest dao.Contest) (dao.Contest, error)
	FindPage(ctx context.Context, filter dao.ContestFilter) ([]dao.Contest, int64, error)
	GetByID(ctx context.Context, id uint) (dao.Contest, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]dao.Contest, error)
	UpdateOwned(ctx context.Context, contest dao.Contest) (int64, error)
	DeleteOwned(ctx context.Context, id uint, ownerEmail string) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	SetWinner(ctx context.Context, contestID, submissionID uint, winnerPhoto string) error
	FindWinners(ctx context.Context) ([]dao.Contest, error)
	TopPerformers(ctx context.Context, limit int) ([]dao.TopPerformerRow, error)
}

type ContestRepository struct {
	dao ContestDAO
}

func NewContestRepository(dao ContestDAO) *ContestRepository {
	return &ContestRepository{
		dao: dao,
	}
}

func (r *ContestRepository) Create(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(contest))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContestRepository) FindPage(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error) {
	filter := dao.ContestFilter{
		Type:   query.Type,
		Status: query.Status,
		Search: query.Search,
		Skip:   (query.Page - 1) * query.Limit,
		Limit:  query.Limit,
	}

	contests, total, err := r.dao.FindPage(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindPage -> %w", err)
	}

	return r.daosToDomain(contests), total, nil
}

func (r *ContestRepository) GetByID(ctx context.Context, id uint) (domain.Contest, error) {
	contest, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.daoToDomain(contest), nil
}

func (r *ContestRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error) {
	contests, err := r.dao.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwner -> %w", err)
	}

	return r.daosToDomain(contests), nil
}

func (r *ContestRepository) UpdateOwned(ctx context.Context, contest domain.Contest) (int64, error) {
	affected, err := r.dao.UpdateOwned(ctx, r.domainToDao(contest))
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateOwned -> %w", err)
	}

	return affected, nil
}

func (r *ContestRepository) DeleteOwned(ctx context.Context, id uint, ownerEmail string) (int64, error) {
	affected, err := r.dao.DeleteOwned(ctx, id, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteOwned -> %w", err)
	}

	return affected, nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	affected, err := r.dao.UpdateStatus(ctx, id, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return affected, nil
}

func (r *ContestRepository) Delete(ctx context.Context, id uint) (int64, error) {
	affected, err := r.dao.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return affected, nil
}

func (r *ContestRepository) SetWinner(ctx context.Context, contestID, submissionID uint, winnerPhoto string) error {
	if err := r.dao.SetWinner(ctx, contestID, submissionID, winnerPhoto); err != nil {
		return fmt.Errorf("r.dao.SetWinner -> %w", err)
	}

	return nil
}

func (r *ContestRepository) FindWinners(ctx context.Context) ([]domain.Contest, error) {
	contests, err := r.dao.FindWinners(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWinners -> %w", err)
	}

	return r.daosToDomain(contests), nil
}

func (r *ContestRepository) TopPerformers(ctx context.Context, limit int) ([]domain.TopPerformer, error) {
	rows, err := r.dao.TopPerformers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopPerformers -> %w", err)
	}

	performers := make([]domain.TopPerformer, len(rows))
	for i, row := range rows {
		performers[i] = domain.TopPerformer{
			WinnerEmail:   row.WinnerEmail,
			WinnerName:    row.WinnerName,
			WinnerPhoto:   row.WinnerPhoto,
			Wins:          row.Wins,
			TotalEarnings: row.TotalEarnings,
		}
	}

	return performers, nil
}

func (r *ContestRepository) domainToDao(c domain.Contest) dao.Contest {
	return dao.Contest{
		ID:                c.ID,
		OwnerEmail:        c.OwnerEmail,
		OwnerName:         c.OwnerName,
		ContestName:       c.ContestName,
		ContestType:       c.ContestType,
		Image:             c.Image,
		Price:             c.Price,
		PrizeMoney:        c.PrizeMoney,
		Description:       c.Description,
		Instruction:       c.Instruction,
		Deadline:          c.Deadline,
		Status:            c.Status,
		ParticipantsCount: c.ParticipantsCount,
		WinnerEmail:       c.WinnerEmail,
		WinnerName:        c.WinnerName,
		WinnerPhoto:       c.WinnerPhoto,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (r *ContestRepository) daoToDomain(c dao.Contest) domain.Contest {
	return domain.Contest{
		ID:                c.ID,
		OwnerEmail:        c.OwnerEmail,
		OwnerName:         c.OwnerName,
		ContestName:       c.ContestName,
		ContestType:       c.ContestType,
		Image:             c.Image,
		Price:             c.Price,
		PrizeMoney:        c.PrizeMoney,
		Description:       c.Description,
		Instruction:       c.Instruction,
		Deadline:          c.Deadline,
		Status:            c.Status,
		ParticipantsCount: c.ParticipantsCount,
		WinnerEmail:       c.WinnerEmail,
		WinnerName:        c.WinnerName,
		WinnerPhoto:       c.WinnerPhoto,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (r *ContestRepository) daosToDomain(contests []dao.Contest) []domain.Contest {
	result := make([]domain.Contest, len(contests))
	for i, c := range contests {
		result[i] = r.daoToDomain(c)
	}

	return result
}
