package response

import (
	"github.com/xportshq/xports-api/internal/domain"
)

// ContestListResponse pairs one page of contests with the total count
// of everything matching the filters, so clients can paginate.
type ContestListResponse struct {
	Data  []domain.Contest `json:"data"`
	Total int64            `json:"total"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegistrationCheckResponse reports whether the caller holds a paid
// slot in a contest and, if so, its submission state.
type RegistrationCheckResponse struct {
	Registered       bool   `json:"registered"`
	SubmissionStatus string `json:"submission_status,omitempty"`
}
