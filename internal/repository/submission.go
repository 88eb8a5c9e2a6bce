package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/repository/dao"
)

var (
	ErrSubmissionNotFound = dao.ErrSubmissionNotFound
	ErrSubmissionExists   = dao.ErrSubmissionExists
	ErrAlreadySubmitted   = dao.ErrAlreadySubmitted
)

type SubmissionDAO interface {
	InsertWithParticipantCount(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByTransactionID(ctx context.Context, transactionID string) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	FindByParticipantAndContest(ctx context.Context, participantEmail string, contestID uint) (dao.Submission, error)
	MarkSubmitted(ctx context.Context, participantEmail string, contestID uint, link string, at time.Time) (dao.Submission, error)
	FindByContest(ctx context.Context, contestID uint) ([]dao.Submission, error)
	FindByParticipant(ctx context.Context, participantEmail string) ([]dao.Submission, error)
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) CreateWithParticipantCount(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.InsertWithParticipantCount(ctx, r.domainToDao(submission))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.InsertWithParticipantCount -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SubmissionRepository) FindByTransactionID(ctx context.Context, transactionID string) (domain.Submission, error) {
	found, err := r.dao.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByTransactionID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SubmissionRepository) FindByParticipantAndContest(ctx context.Context, participantEmail string, contestID uint) (domain.Submission, error) {
	found, err := r.dao.FindByParticipantAndContest(ctx, participantEmail, contestID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByParticipantAndContest -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SubmissionRepository) MarkSubmitted(ctx context.Context, participantEmail string, contestID uint, link string, at time.Time) (domain.Submission, error) {
	updated, err := r.dao.MarkSubmitted(ctx, participantEmail, contestID, link, at)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.MarkSubmitted -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SubmissionRepository) FindByContest(ctx context.Context, contestID uint) ([]domain.Submission, error) {
	found, err := r.dao.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByContest -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *SubmissionRepository) FindByParticipant(ctx context.Context, participantEmail string) ([]domain.Submission, error) {
	found, err := r.dao.FindByParticipant(ctx, participantEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *SubmissionRepository) domainToDao(s domain.Submission) dao.Submission {
	return dao.Submission{
		ID:               s.ID,
		ParticipantEmail: s.ParticipantEmail,
		ParticipantName:  s.ParticipantName,
		ContestID:        s.ContestID,
		TransactionID:    s.TransactionID,
		PaymentStatus:    s.PaymentStatus,
		SubmissionStatus: s.SubmissionStatus,
		SubmissionLink:   s.SubmissionLink,
		ContestName:      s.ContestName,
		ContestType:      s.ContestType,
		PrizeMoney:       s.PrizeMoney,
		Price:            s.Price,
		IsWinner:         s.IsWinner,
		PaidAt:           s.PaidAt,
		SubmittedAt:      s.SubmittedAt,
	}
}

func (r *SubmissionRepository) daoToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:               s.ID,
		ParticipantEmail: s.ParticipantEmail,
		ParticipantName:  s.ParticipantName,
		ContestID:        s.ContestID,
		TransactionID:    s.TransactionID,
		PaymentStatus:    s.PaymentStatus,
		SubmissionStatus: s.SubmissionStatus,
		SubmissionLink:   s.SubmissionLink,
		ContestName:      s.ContestName,
		ContestType:      s.ContestType,
		PrizeMoney:       s.PrizeMoney,
		Price:            s.Price,
		IsWinner:         s.IsWinner,
		PaidAt:           s.PaidAt,
		SubmittedAt:      s.SubmittedAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (r *SubmissionRepository) daosToDomain(submissions []dao.Submission) []domain.Submission {
	result := make([]domain.Submission, len(submissions))
	for i, s := range submissions {
		result[i] = r.daoToDomain(s)
	}

	return result
}
