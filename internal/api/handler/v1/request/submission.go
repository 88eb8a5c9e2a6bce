package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterTaskRequest struct {
	ContestID      uint   `json:"contest_id"`
	SubmissionLink string `json:"submission_link"`
}

func (req *RegisterTaskRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.SubmissionLink, validation.Required, is.URL),
	)
}
