package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository"
)

var (
	ErrContestNotFound        = repository.ErrContestNotFound
	ErrSubmissionNotInContest = repository.ErrSubmissionNotInContest
	ErrWinnerAlreadyDeclared  = errors.New("contest winner already declared")
	ErrNotContestOwner        = errors.New("contest belongs to another owner")
)

const (
	defaultPageSize   = 10
	maxPageSize       = 50
	topPerformerCount = 3
)

type ContestRepository interface {
	Create(ctx context.Context, contest domain.Contest) (domain.Contest, error)
	FindPage(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error)
	GetByID(ctx context.Context, id uint) (domain.Contest, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error)
	UpdateOwned(ctx context.Context, contest domain.Contest) (int64, error)
	DeleteOwned(ctx context.Context, id uint, ownerEmail string) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	SetWinner(ctx context.Context, contestID, submissionID uint, winnerPhoto string) error
	FindWinners(ctx context.Context) ([]domain.Contest, error)
	TopPerformers(ctx context.Context, limit int) ([]domain.TopPerformer, error)
}

type ContestUserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type ContestSubmissionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
}

type ContestService struct {
	repo           ContestRepository
	userRepo       ContestUserRepository
	submissionRepo ContestSubmissionRepository
}

func NewContestService(repo ContestRepository, userRepo ContestUserRepository, submissionRepo ContestSubmissionRepository) *ContestService {
	return &ContestService{
		repo:           repo,
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *ContestService) CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	contest.Status = domain.ContestStatusPending
	contest.ParticipantsCount = 0

	created, err := s.repo.Create(ctx, contest)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListContests returns one page ordered by popularity plus the total
// matching count. The count comes from its own query.
func (s *ContestService) ListContests(ctx context.Context, query domain.ContestQuery) ([]domain.Contest, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}

	contests, total, err := s.repo.FindPage(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindPage -> %w", err)
	}

	return contests, total, nil
}

func (s *ContestService) GetContest(ctx context.Context, id uint) (domain.Contest, error) {
	contest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return contest, nil
}

func (s *ContestService) ListContestsByOwner(ctx context.Context, ownerEmail string) ([]domain.Contest, error) {
	contests, err := s.repo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOwner -> %w", err)
	}

	return contests, nil
}

// UpdateContest edits only where id and owner email both match; a
// mismatch touches zero rows and is reported back as such, not an error.
func (s *ContestService) UpdateContest(ctx context.Context, contest domain.Contest) (int64, error) {
	affected, err := s.repo.UpdateOwned(ctx, contest)
	if err != nil {
		return 0, fmt.Errorf("s.repo.UpdateOwned -> %w", err)
	}

	return affected, nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id uint, ownerEmail string) (int64, error) {
	affected, err := s.repo.DeleteOwned(ctx, id, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteOwned -> %w", err)
	}

	return affected, nil
}

func (s *ContestService) SetContestStatus(ctx context.Context, id uint, status string) error {
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}
	if affected == 0 {
		return ErrContestNotFound
	}

	return nil
}

func (s *ContestService) AdminDeleteContest(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	if affected == 0 {
		return ErrContestNotFound
	}

	return nil
}

// DeclareWinner resolves the winner's photo from their account and hands
// the contest and submission writes to the repository as one transaction.
// Only the contest owner may declare, and the submission must belong to
// the contest being completed.
func (s *ContestService) DeclareWinner(ctx context.Context, contestID, submissionID uint, ownerEmail string) error {
	contest, err := s.repo.GetByID(ctx, contestID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}
	if contest.OwnerEmail != ownerEmail {
		return ErrNotContestOwner
	}
	if contest.Status == domain.ContestStatusCompleted {
		return ErrWinnerAlreadyDeclared
	}

	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("s.submissionRepo.FindByID -> %w", err)
	}
	if submission.ContestID != contestID {
		return ErrSubmissionNotInContest
	}

	// Best effort: the photo is display sugar, a missing account must
	// not block the declaration.
	winnerPhoto := ""
	if winner, err := s.userRepo.FindByEmail(ctx, submission.ParticipantEmail); err == nil {
		winnerPhoto = winner.Photo
	}

	if err := s.repo.SetWinner(ctx, contestID, submissionID, winnerPhoto); err != nil {
		return fmt.Errorf("s.repo.SetWinner -> %w", err)
	}

	return nil
}

func (s *ContestService) ListWinners(ctx context.Context) ([]domain.Contest, error) {
	winners, err := s.repo.FindWinners(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWinners -> %w", err)
	}

	return winners, nil
}

func (s *ContestService) TopPerformers(ctx context.Context) ([]domain.TopPerformer, error) {
	performers, err := s.repo.TopPerformers(ctx, topPerformerCount)
	if err != nil {
		return nil, fmt.Errorf("s.repo.TopPerformers -> %w", err)
	}

	return performers, nil
}
