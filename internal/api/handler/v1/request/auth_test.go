package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:    "alex@example.com",
		Password: "hunter22x",
		Name:     "Alex",
	}

	tests := []struct {
		name    string
		mutate  func(req *SignupRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(req *SignupRequest) {},
		},
		{
			name:    "missing email",
			mutate:  func(req *SignupRequest) { req.Email = "" },
			wantErr: true,
		},
		{
			name:    "malformed email",
			mutate:  func(req *SignupRequest) { req.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "password too short",
			mutate:  func(req *SignupRequest) { req.Password = "ab1" },
			wantErr: true,
		},
		{
			name:    "password without a digit",
			mutate:  func(req *SignupRequest) { req.Password = "onlyletters" },
			wantErr: true,
		},
		{
			name:    "password without a letter",
			mutate:  func(req *SignupRequest) { req.Password = "1234567890" },
			wantErr: true,
		},
		{
			name:    "name too short",
			mutate:  func(req *SignupRequest) { req.Name = "A" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "alex@example.com", Password: "hunter22x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "hunter22x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "alex@example.com", Password: ""}).Validate())
}
