package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionExists   = errors.New("submission already exists for this transaction")
	ErrAlreadySubmitted   = errors.New("task already submitted")
)

type Submission struct {
	ID uint `gorm:"primaryKey"`

	ParticipantEmail string `gorm:"index;not null"`
	ParticipantName  string
	ContestID        uint `gorm:"index;not null"`

	// The gateway's checkout session id. The unique index is the
	// idempotency guard for duplicate checkout confirmations.
	TransactionID string `gorm:"uniqueIndex;not null"`

	PaymentStatus    string `gorm:"not null"`
	SubmissionStatus string `gorm:"not null;default:pending"` // "pending" or "submitted"
	SubmissionLink   string

	ContestName string
	ContestType string
	PrizeMoney  int64
	Price       int64

	IsWinner bool `gorm:"not null;default:false"`

	PaidAt      time.Time
	SubmittedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

// InsertWithParticipantCount inserts the submission and increments the
// contest's participants counter in one transaction, so the counter can
// never drift from the number of paid submissions. A unique violation on
// the transaction id maps to ErrSubmissionExists and leaves the counter
// untouched.
func (d *SubmissionDAO) InsertWithParticipantCount(ctx context.Context, submission Submission) (Submission, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrSubmissionExists
			}
			return err
		}

		result := tx.Model(&Contest{}).
			Where("id = ?", submission.ContestID).
			UpdateColumn("participants_count", gorm.Expr("participants_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrContestNotFound
		}

		return nil
	})
	if err != nil {
		return Submission{}, err
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByTransactionID(ctx context.Context, transactionID string) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, "transaction_id = ?", transactionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByParticipantAndContest(ctx context.Context, participantEmail string, contestID uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).
		First(&submission, "participant_email = ? AND contest_id = ?", participantEmail, contestID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

// MarkSubmitted transitions pending -> submitted exactly once. The status
// check sits in the WHERE clause, so a concurrent second submit updates
// zero rows and is reported as ErrAlreadySubmitted.
func (d *SubmissionDAO) MarkSubmitted(ctx context.Context, participantEmail string, contestID uint, link string, at time.Time) (Submission, error) {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("participant_email = ? AND contest_id = ? AND submission_status = ?",
			participantEmail, contestID, "pending").
		Updates(map[string]interface{}{
			"submission_status": "submitted",
			"submission_link":   link,
			"submitted_at":      at,
		})
	if result.Error != nil {
		return Submission{}, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish "never paid" from "already submitted".
		existing, err := d.FindByParticipantAndContest(ctx, participantEmail, contestID)
		if err != nil {
			return Submission{}, err
		}
		if existing.SubmissionStatus == "submitted" {
			return Submission{}, ErrAlreadySubmitted
		}

		return Submission{}, ErrSubmissionNotFound
	}

	return d.FindByParticipantAndContest(ctx, participantEmail, contestID)
}

func (d *SubmissionDAO) FindByContest(ctx context.Context, contestID uint) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("created_at ASC").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) FindByParticipant(ctx context.Context, participantEmail string) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).
		Where("participant_email = ?", participantEmail).
		Order("created_at DESC").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}
