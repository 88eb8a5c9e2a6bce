package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository"
)

var (
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrAlreadySubmitted   = repository.ErrAlreadySubmitted
)

type SubmissionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	FindByParticipantAndContest(ctx context.Context, participantEmail string, contestID uint) (domain.Submission, error)
	MarkSubmitted(ctx context.Context, participantEmail string, contestID uint, link string, at time.Time) (domain.Submission, error)
	FindByContest(ctx context.Context, contestID uint) ([]domain.Submission, error)
	FindByParticipant(ctx context.Context, participantEmail string) ([]domain.Submission, error)
}

type SubmissionService struct {
	repo SubmissionRepository
}

func NewSubmissionService(repo SubmissionRepository) *SubmissionService {
	return &SubmissionService{
		repo: repo,
	}
}

// RegisterTask attaches the work link to the participant's paid slot.
// The slot only exists once payment has been reconciled, and flips from
// pending to submitted exactly once.
func (s *SubmissionService) RegisterTask(ctx context.Context, participantEmail string, contestID uint, submissionLink string) (domain.Submission, error) {
	submission, err := s.repo.MarkSubmitted(ctx, participantEmail, contestID, submissionLink, time.Now())
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.MarkSubmitted -> %w", err)
	}

	return submission, nil
}

// CheckRegistration reports whether the caller holds a slot in the
// contest and what state it is in. No slot is a normal answer here,
// not an error.
func (s *SubmissionService) CheckRegistration(ctx context.Context, participantEmail string, contestID uint) (bool, domain.Submission, error) {
	submission, err := s.repo.FindByParticipantAndContest(ctx, participantEmail, contestID)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return false, domain.Submission{}, nil
		}

		return false, domain.Submission{}, fmt.Errorf("s.repo.FindByParticipantAndContest -> %w", err)
	}

	return true, submission, nil
}

func (s *SubmissionService) ListByContest(ctx context.Context, contestID uint) ([]domain.Submission, error) {
	submissions, err := s.repo.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByContest -> %w", err)
	}

	return submissions, nil
}

func (s *SubmissionService) ListByParticipant(ctx context.Context, participantEmail string) ([]domain.Submission, error) {
	submissions, err := s.repo.FindByParticipant(ctx, participantEmail)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipant -> %w", err)
	}

	return submissions, nil
}
