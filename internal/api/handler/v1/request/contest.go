package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateContestRequest struct {
	ContestName string `json:"contest_name"`
	ContestType string `json:"contest_type"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	PrizeMoney  int64  `json:"prize_money"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Deadline    string `json:"deadline"`
}

func (req *CreateContestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.ContestType, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.PrizeMoney, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Instruction, validation.Length(0, 2000)),
		validation.Field(&req.Deadline, validation.Required),
	)
}

// UpdateContestRequest carries the owner-editable fields. Winner and
// counter fields are never accepted here.
type UpdateContestRequest struct {
	ContestName string `json:"contest_name"`
	ContestType string `json:"contest_type"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	PrizeMoney  int64  `json:"prize_money"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Deadline    string `json:"deadline"`
}

func (req *UpdateContestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.ContestType, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.PrizeMoney, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Instruction, validation.Length(0, 2000)),
		validation.Field(&req.Deadline, validation.Required),
	)
}

type DeclareWinnerRequest struct {
	SubmissionID uint `json:"submission_id"`
}

func (req *DeclareWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SubmissionID, validation.Required, validation.Min(uint(1))),
	)
}
