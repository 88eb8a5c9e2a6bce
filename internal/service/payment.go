package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/payment"
	"github.com/xportshq/xports-api/internal/repository"
)

var (
	ErrPaymentNotCompleted = errors.New("checkout session not paid")
	ErrSessionNotUsable    = errors.New("checkout session missing contest metadata")
)

// CheckoutGateway is what the reconciler needs from the payment
// provider. The Stripe client satisfies it; tests hand in a fake.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, input payment.CheckoutInput) (domain.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error)
}

type PaymentContestRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Contest, error)
}

type PaymentSubmissionRepository interface {
	FindByTransactionID(ctx context.Context, transactionID string) (domain.Submission, error)
	CreateWithParticipantCount(ctx context.Context, submission domain.Submission) (domain.Submission, error)
}

// PaymentService creates hosted checkout sessions and reconciles them
// into participation slots. Reconciliation is idempotent: the session id
// doubles as the slot's transaction id, which carries a unique index, so
// a confirmation replayed any number of times records exactly one slot
// and one participant-count bump.
type PaymentService struct {
	gateway        CheckoutGateway
	contestRepo    PaymentContestRepository
	submissionRepo PaymentSubmissionRepository
}

func NewPaymentService(gateway CheckoutGateway, contestRepo PaymentContestRepository, submissionRepo PaymentSubmissionRepository) *PaymentService {
	return &PaymentService{
		gateway:        gateway,
		contestRepo:    contestRepo,
		submissionRepo: submissionRepo,
	}
}

// CreateCheckoutSession prices the session from the stored contest, never
// from anything the client sent.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, contestID uint, customerEmail, participantName string) (domain.CheckoutSession, error) {
	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("s.contestRepo.GetByID -> %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		ContestID:       contest.ID,
		ContestName:     contest.ContestName,
		Price:           contest.Price,
		CustomerEmail:   customerEmail,
		ParticipantName: participantName,
	})
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("s.gateway.CreateCheckoutSession -> %w", err)
	}

	return session, nil
}

func (s *PaymentService) GetCheckoutSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("s.gateway.GetCheckoutSession -> %w", err)
	}

	return session, nil
}

// ConfirmPayment verifies the session with the gateway and records the
// participation slot. The second return value reports whether this call
// found the slot already recorded.
func (s *PaymentService) ConfirmPayment(ctx context.Context, sessionID string) (domain.Submission, bool, error) {
	if existing, err := s.submissionRepo.FindByTransactionID(ctx, sessionID); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, repository.ErrSubmissionNotFound) {
		return domain.Submission{}, false, fmt.Errorf("s.submissionRepo.FindByTransactionID -> %w", err)
	}

	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return domain.Submission{}, false, fmt.Errorf("s.gateway.GetCheckoutSession -> %w", err)
	}
	if session.PaymentStatus != "paid" {
		return domain.Submission{}, false, ErrPaymentNotCompleted
	}

	contestID, err := contestIDFromMetadata(session.Metadata)
	if err != nil {
		return domain.Submission{}, false, err
	}

	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return domain.Submission{}, false, fmt.Errorf("s.contestRepo.GetByID -> %w", err)
	}

	slot := domain.Submission{
		ParticipantEmail: session.CustomerEmail,
		ParticipantName:  session.Metadata["participant_name"],
		ContestID:        contest.ID,
		TransactionID:    session.ID,
		PaymentStatus:    session.PaymentStatus,
		SubmissionStatus: domain.SubmissionStatusPending,
		ContestName:      contest.ContestName,
		ContestType:      contest.ContestType,
		PrizeMoney:       contest.PrizeMoney,
		Price:            contest.Price,
		PaidAt:           time.Now(),
	}
	if email := session.Metadata["participant_email"]; email != "" {
		slot.ParticipantEmail = email
	}

	created, err := s.submissionRepo.CreateWithParticipantCount(ctx, slot)
	if err != nil {
		// A concurrent confirmation of the same session got here first.
		// The unique index on the transaction id makes that loss safe to
		// treat as already processed.
		if errors.Is(err, repository.ErrSubmissionExists) {
			existing, findErr := s.submissionRepo.FindByTransactionID(ctx, sessionID)
			if findErr != nil {
				return domain.Submission{}, false, fmt.Errorf("s.submissionRepo.FindByTransactionID -> %w", findErr)
			}

			return existing, true, nil
		}

		return domain.Submission{}, false, fmt.Errorf("s.submissionRepo.CreateWithParticipantCount -> %w", err)
	}

	zap.L().Info("payment reconciled",
		zap.String("session_id", session.ID),
		zap.Uint("contest_id", contest.ID),
		zap.String("participant_email", created.ParticipantEmail),
	)

	return created, false, nil
}

func contestIDFromMetadata(metadata map[string]string) (uint, error) {
	raw, ok := metadata["contest_id"]
	if !ok || raw == "" {
		return 0, ErrSessionNotUsable
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSessionNotUsable, err)
	}

	return uint(id), nil
}
