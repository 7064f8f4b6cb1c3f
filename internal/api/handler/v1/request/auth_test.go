package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  RegisterRequest{Username: "asha", Password: "passw0rd", Role: "student"},
		},
		{
			name:    "missing username",
			req:     RegisterRequest{Password: "passw0rd"},
			wantErr: true,
		},
		{
			name:    "password too short",
			req:     RegisterRequest{Username: "asha", Password: "pw1"},
			wantErr: true,
		},
		{
			name:    "password without digit",
			req:     RegisterRequest{Username: "asha", Password: "passwords"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			req:     RegisterRequest{Username: "asha", Password: "passw0rd", Role: "teacher"},
			wantErr: true,
		},
		{
			name: "empty role allowed",
			req:  RegisterRequest{Username: "asha", Password: "passw0rd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
