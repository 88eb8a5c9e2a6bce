package domain

import "time"

const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusSubmitted = "submitted"
)

// Submission links a paid participant to a contest. It is created only by
// the payment reconciliation flow, so its existence implies a payment.
type Submission struct {
	ID               uint       `json:"id"`
	ParticipantEmail string     `json:"participant_email"`
	ParticipantName  string     `json:"participant_name"`
	ContestID        uint       `json:"contest_id"`
	TransactionID    string     `json:"transaction_id"`
	PaymentStatus    string     `json:"payment_status"`
	SubmissionStatus string     `json:"submission_status"`
	SubmissionLink   string     `json:"submission_link"`
	ContestName      string     `json:"contest_name"`
	ContestType      string     `json:"contest_type"`
	PrizeMoney       int64      `json:"prize_money"`
	Price            int64      `json:"price"`
	IsWinner         bool       `json:"is_winner"`
	PaidAt           time.Time  `json:"paid_at"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
