package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/payment"
	"github.com/xportshq/xports-api/internal/repository"
)

type mockCheckoutGateway struct {
	mock.Mock
}

func (m *mockCheckoutGateway) CreateCheckoutSession(ctx context.Context, input payment.CheckoutInput) (domain.CheckoutSession, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.CheckoutSession), args.Error(1)
}

func (m *mockCheckoutGateway) GetCheckoutSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.CheckoutSession), args.Error(1)
}

type mockPaymentContestRepo struct {
	mock.Mock
}

func (m *mockPaymentContestRepo) GetByID(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Contest), args.Error(1)
}

type mockPaymentSubmissionRepo struct {
	mock.Mock
}

func (m *mockPaymentSubmissionRepo) FindByTransactionID(ctx context.Context, transactionID string) (domain.Submission, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *mockPaymentSubmissionRepo) CreateWithParticipantCount(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	args := m.Called(ctx, submission)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	contest := domain.Contest{
		ID:          7,
		ContestName: "Logo Design Sprint",
		Price:       2500,
	}

	gateway := new(mockCheckoutGateway)
	contestRepo := new(mockPaymentContestRepo)
	contestRepo.On("GetByID", mock.Anything, uint(7)).Return(contest, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, payment.CheckoutInput{
		ContestID:       7,
		ContestName:     "Logo Design Sprint",
		Price:           2500,
		CustomerEmail:   "alex@example.com",
		ParticipantName: "Alex",
	}).Return(domain.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.test/cs_test_1"}, nil)

	svc := NewPaymentService(gateway, contestRepo, new(mockPaymentSubmissionRepo))

	session, err := svc.CreateCheckoutSession(context.Background(), 7, "alex@example.com", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	gateway.AssertExpectations(t)
}

func TestPaymentService_ConfirmPayment_RecordsSlotOnce(t *testing.T) {
	session := domain.CheckoutSession{
		ID:            "cs_test_42",
		PaymentStatus: "paid",
		CustomerEmail: "alex@example.com",
		Metadata: map[string]string{
			"contest_id":        "7",
			"participant_email": "alex@example.com",
			"participant_name":  "Alex",
		},
	}
	contest := domain.Contest{
		ID:          7,
		ContestName: "Logo Design Sprint",
		ContestType: "design",
		Price:       2500,
		PrizeMoney:  50000,
	}

	gateway := new(mockCheckoutGateway)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_test_42").Return(session, nil)

	contestRepo := new(mockPaymentContestRepo)
	contestRepo.On("GetByID", mock.Anything, uint(7)).Return(contest, nil)

	submissionRepo := new(mockPaymentSubmissionRepo)
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").
		Return(domain.Submission{}, repository.ErrSubmissionNotFound)
	submissionRepo.On("CreateWithParticipantCount", mock.Anything, mock.MatchedBy(func(s domain.Submission) bool {
		return s.TransactionID == "cs_test_42" &&
			s.ContestID == 7 &&
			s.ParticipantEmail == "alex@example.com" &&
			s.SubmissionStatus == domain.SubmissionStatusPending
	})).Return(domain.Submission{ID: 1, TransactionID: "cs_test_42"}, nil).Once()

	svc := NewPaymentService(gateway, contestRepo, submissionRepo)

	created, alreadyProcessed, err := svc.ConfirmPayment(context.Background(), "cs_test_42")
	require.NoError(t, err)
	assert.False(t, alreadyProcessed)
	assert.Equal(t, "cs_test_42", created.TransactionID)
	submissionRepo.AssertExpectations(t)
}

func TestPaymentService_ConfirmPayment_ReplayIsAcknowledged(t *testing.T) {
	existing := domain.Submission{ID: 1, TransactionID: "cs_test_42", ContestID: 7}

	gateway := new(mockCheckoutGateway)
	submissionRepo := new(mockPaymentSubmissionRepo)
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").Return(existing, nil)

	svc := NewPaymentService(gateway, new(mockPaymentContestRepo), submissionRepo)

	got, alreadyProcessed, err := svc.ConfirmPayment(context.Background(), "cs_test_42")
	require.NoError(t, err)
	assert.True(t, alreadyProcessed)
	assert.Equal(t, existing, got)

	// The gateway was never consulted and no slot was written.
	gateway.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
	submissionRepo.AssertNotCalled(t, "CreateWithParticipantCount", mock.Anything, mock.Anything)
}

func TestPaymentService_ConfirmPayment_ConcurrentReplayLosesGracefully(t *testing.T) {
	session := domain.CheckoutSession{
		ID:            "cs_test_42",
		PaymentStatus: "paid",
		CustomerEmail: "alex@example.com",
		Metadata:      map[string]string{"contest_id": "7"},
	}
	existing := domain.Submission{ID: 1, TransactionID: "cs_test_42"}

	gateway := new(mockCheckoutGateway)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_test_42").Return(session, nil)

	contestRepo := new(mockPaymentContestRepo)
	contestRepo.On("GetByID", mock.Anything, uint(7)).Return(domain.Contest{ID: 7}, nil)

	submissionRepo := new(mockPaymentSubmissionRepo)
	// First lookup misses, the insert then loses the race on the unique index.
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").
		Return(domain.Submission{}, repository.ErrSubmissionNotFound).Once()
	submissionRepo.On("CreateWithParticipantCount", mock.Anything, mock.Anything).
		Return(domain.Submission{}, repository.ErrSubmissionExists)
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").
		Return(existing, nil).Once()

	svc := NewPaymentService(gateway, contestRepo, submissionRepo)

	got, alreadyProcessed, err := svc.ConfirmPayment(context.Background(), "cs_test_42")
	require.NoError(t, err)
	assert.True(t, alreadyProcessed)
	assert.Equal(t, existing, got)
}

func TestPaymentService_ConfirmPayment_RejectsUnpaidSession(t *testing.T) {
	session := domain.CheckoutSession{
		ID:            "cs_test_42",
		PaymentStatus: "unpaid",
		Metadata:      map[string]string{"contest_id": "7"},
	}

	gateway := new(mockCheckoutGateway)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_test_42").Return(session, nil)

	submissionRepo := new(mockPaymentSubmissionRepo)
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").
		Return(domain.Submission{}, repository.ErrSubmissionNotFound)

	svc := NewPaymentService(gateway, new(mockPaymentContestRepo), submissionRepo)

	_, _, err := svc.ConfirmPayment(context.Background(), "cs_test_42")
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	submissionRepo.AssertNotCalled(t, "CreateWithParticipantCount", mock.Anything, mock.Anything)
}

func TestPaymentService_ConfirmPayment_RejectsSessionWithoutContest(t *testing.T) {
	session := domain.CheckoutSession{
		ID:            "cs_test_42",
		PaymentStatus: "paid",
		Metadata:      map[string]string{},
	}

	gateway := new(mockCheckoutGateway)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_test_42").Return(session, nil)

	submissionRepo := new(mockPaymentSubmissionRepo)
	submissionRepo.On("FindByTransactionID", mock.Anything, "cs_test_42").
		Return(domain.Submission{}, repository.ErrSubmissionNotFound)

	svc := NewPaymentService(gateway, new(mockPaymentContestRepo), submissionRepo)

	_, _, err := svc.ConfirmPayment(context.Background(), "cs_test_42")
	assert.ErrorIs(t, err, ErrSessionNotUsable)
}
