package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClientRequest(t *testing.T) {
	valid := ClientRequest{Name: "John Doe", Email: "john@x.com", Gender: "male"}

	tests := []struct {
		name    string
		mutate  func(*ClientRequest)
		field   string
		message string
	}{
		{
			name:   "valid request",
			mutate: func(r *ClientRequest) {},
		},
		{
			name:    "blank name",
			mutate:  func(r *ClientRequest) { r.Name = "" },
			field:   "name",
			message: "name must not be blank",
		},
		{
			name:    "whitespace-only name",
			mutate:  func(r *ClientRequest) { r.Name = "   " },
			field:   "name",
			message: "name must not be blank",
		},
		{
			name:    "name too short",
			mutate:  func(r *ClientRequest) { r.Name = "J" },
			field:   "name",
			message: "name must be between 2 and 50 characters",
		},
		{
			name:    "name too long",
			mutate:  func(r *ClientRequest) { r.Name = strings.Repeat("a", 51) },
			field:   "name",
			message: "name must be between 2 and 50 characters",
		},
		{
			name:    "blank email",
			mutate:  func(r *ClientRequest) { r.Email = "" },
			field:   "email",
			message: "email must not be blank",
		},
		{
			name:    "malformed email",
			mutate:  func(r *ClientRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "blank gender",
			mutate:  func(r *ClientRequest) { r.Gender = "" },
			field:   "gender",
			message: "gender must not be blank",
		},
		{
			name:    "unknown gender",
			mutate:  func(r *ClientRequest) { r.Gender = "other" },
			field:   "gender",
			message: "gender must be male or female",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			details := ValidateClientRequest(req)
			if tc.field == "" {
				assert.Nil(t, details)
				return
			}
			require.Contains(t, details, tc.field)
			assert.Contains(t, details[tc.field], tc.message)
		})
	}
}

func TestValidateClientRequestCollectsAllFields(t *testing.T) {
	details := ValidateClientRequest(ClientRequest{})
	require.Len(t, details, 3)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "gender")
}
