package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrContestNotFound        = errors.New("contest not found")
	ErrSubmissionNotInContest = errors.New("submission does not belong to this contest")
)

type Contest struct {
	ID uint `gorm:"primaryKey"`

	OwnerEmail  string `gorm:"index;not null"`
	OwnerName   string
	ContestName string `gorm:"not null"`
	ContestType string `gorm:"index"`
	Image       string
	Price       int64
	PrizeMoney  int64
	Description string
	Instruction string
	Deadline    string

	Status            string `gorm:"not null;default:pending"` // "pending", "accepted", "completed" or "rejected"
	ParticipantsCount int    `gorm:"not null;default:0"`

	WinnerEmail string
	WinnerName  string
	WinnerPhoto string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContestFilter narrows FindPage. Search is matched against name and
// type with ILIKE.
type ContestFilter struct {
	Type   string
	Status string
	Search string
	Skip   int
	Limit  int
}

type ContestDAO struct {
	db *gorm.DB
}

func NewContestDAO(db *gorm.DB) *ContestDAO {
	return &ContestDAO{
		db: db,
	}
}

func (d *ContestDAO) Insert(ctx context.Context, contest Contest) (Contest, error) {
	result := d.db.WithContext(ctx).Create(&contest)
	if result.Error != nil {
		return Contest{}, result.Error
	}

	return contest, nil
}

func (d *ContestDAO) filtered(ctx context.Context, filter ContestFilter) *gorm.DB {
	query := d.db.WithContext(ctx).Model(&Contest{})

	if filter.Type != "" {
		query = query.Where("contest_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("contest_name ILIKE ? OR contest_type ILIKE ?", pattern, pattern)
	}

	return query
}

// FindPage runs the count and the page as two separate queries, so the
// total is not guaranteed point-in-time consistent with the page.
func (d *ContestDAO) FindPage(ctx context.Context, filter ContestFilter) ([]Contest, int64, error) {
	var total int64
	if err := d.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []Contest
	err := d.filtered(ctx, filter).
		Order("participants_count DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&contests).Error
	if err != nil {
		return nil, 0, err
	}

	return contests, total, nil
}

func (d *ContestDAO) GetByID(ctx context.Context, id uint) (Contest, error) {
	var contest Contest

	result := d.db.WithContext(ctx).First(&contest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}

func (d *ContestDAO) FindByOwner(ctx context.Context, ownerEmail string) ([]Contest, error) {
	var contests []Contest

	result := d.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&contests)
	if result.Error != nil {
		return nil, result.Error
	}

	return contests, nil
}

// UpdateOwned applies the edit only where id and owner email both match.
// A mismatch updates zero rows and is not an error.
func (d *ContestDAO) UpdateOwned(ctx context.Context, contest Contest) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Contest{}).
		Where("id = ? AND owner_email = ?", contest.ID, contest.OwnerEmail).
		Updates(map[string]interface{}{
			"contest_name": contest.ContestName,
			"contest_type": contest.ContestType,
			"image":        contest.Image,
			"price":        contest.Price,
			"prize_money":  contest.PrizeMoney,
			"description":  contest.Description,
			"instruction":  contest.Instruction,
			"deadline":     contest.Deadline,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *ContestDAO) DeleteOwned(ctx context.Context, id uint, ownerEmail string) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, ownerEmail).
		Delete(&Contest{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *ContestDAO) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Contest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *ContestDAO) Delete(ctx context.Context, id uint) (int64, error) {
	result := d.db.WithContext(ctx).Delete(&Contest{}, id)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// SetWinner marks the contest completed with the chosen submission's
// participant and flags that submission, in a single transaction. The
// submission must reference the given contest.
func (d *ContestDAO) SetWinner(ctx context.Context, contestID, submissionID uint, winnerPhoto string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission Submission
		if err := tx.First(&submission, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		if submission.ContestID != contestID {
			return ErrSubmissionNotInContest
		}

		result := tx.Model(&Contest{}).
			Where("id = ?", contestID).
			Updates(map[string]interface{}{
				"status":       "completed",
				"winner_email": submission.ParticipantEmail,
				"winner_name":  submission.ParticipantName,
				"winner_photo": winnerPhoto,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrContestNotFound
		}

		return tx.Model(&Submission{}).
			Where("id = ?", submissionID).
			Update("is_winner", true).Error
	})
}

func (d *ContestDAO) FindWinners(ctx context.Context) ([]Contest, error) {
	var contests []Contest

	result := d.db.WithContext(ctx).
		Where("status = ? AND winner_email <> ''", "completed").
		Order("updated_at DESC").
		Find(&contests)
	if result.Error != nil {
		return nil, result.Error
	}

	return contests, nil
}

// TopPerformerRow is the grouped leaderboard projection.
type TopPerformerRow struct {
	WinnerEmail   string
	WinnerName    string
	WinnerPhoto   string
	Wins          int
	TotalEarnings int64
}

func (d *ContestDAO) TopPerformers(ctx context.Context, limit int) ([]TopPerformerRow, error) {
	var rows []TopPerformerRow

	result := d.db.WithContext(ctx).
		Model(&Contest{}).
		Select("winner_email, winner_name, winner_photo, COUNT(*) AS wins, SUM(prize_money) AS total_earnings").
		Where("status = ? AND winner_email <> ''", "completed").
		Group("winner_email, winner_name, winner_photo").
		Order("wins DESC, total_earnings DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
