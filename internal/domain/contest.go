package domain

import "time"

const (
	ContestStatusPending   = "pending"
	ContestStatusAccepted  = "accepted"
	ContestStatusCompleted = "completed"
	ContestStatusRejected  = "rejected"
)

type Contest struct {
	ID                uint      `json:"id"`
	OwnerEmail        string    `json:"owner_email"`
	OwnerName         string    `json:"owner_name"`
	ContestName       string    `json:"contest_name"`
	ContestType       string    `json:"contest_type"`
	Image             string    `json:"image"`
	Price             int64     `json:"price"`
	PrizeMoney        int64     `json:"prize_money"`
	Description       string    `json:"description"`
	Instruction       string    `json:"instruction"`
	Deadline          string    `json:"deadline"`
	Status            string    `json:"status"`
	ParticipantsCount int       `json:"participants_count"`
	WinnerEmail       string    `json:"winner_email"`
	WinnerName        string    `json:"winner_name"`
	WinnerPhoto       string    `json:"winner_photo"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ContestQuery is the filter set accepted by the contest listing.
// Search matches name or type as a case-insensitive substring.
type ContestQuery struct {
	Page   int
	Limit  int
	Type   string
	Status string
	Search string
}

// TopPerformer is one row of the winners leaderboard, grouped by
// winner email and ranked by wins then total earnings.
type TopPerformer struct {
	WinnerEmail   string `json:"winner_email"`
	WinnerName    string `json:"winner_name"`
	WinnerPhoto   string `json:"winner_photo"`
	Wins          int    `json:"wins"`
	TotalEarnings int64  `json:"total_earnings"`
}
