package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCheckoutSessionRequest struct {
	ContestID uint `json:"contest_id"`
}

func (req *CreateCheckoutSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestID, validation.Required, validation.Min(uint(1))),
	)
}

type PaymentSuccessRequest struct {
	SessionID string `json:"session_id"`
}

func (req *PaymentSuccessRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SessionID, validation.Required),
	)
}
