package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := fmt.Errorf("create event: %w", NewValidationError("", "title", "date"))

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "create event: validation failure: title, date", err.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"duplicate", fmt.Errorf("register: %w", ErrDuplicateUser), "User with this email already exists"},
		{"not found", ErrNotFound, "Not found"},
		{"bad password", ErrInvalidCredential, "Invalid password"},
		{"already registered", ErrAlreadyRegistered, "Already registered for this event"},
		{"transport", fmt.Errorf("%w: status 500", ErrTransport), "Server is unavailable, try again later"},
		{"validation default", NewValidationError("", "title"), "Please fill in all required fields"},
		{"validation reason", NewValidationError("Passwords do not match"), "Passwords do not match"},
		{"validation reason with fields", NewValidationError("Invalid value", "date"), "Invalid value: date"},
		{"custom message", fmt.Errorf("login: %w", WithMessage(ErrNotFound, "User not found")), "User not found"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestWithMessage_KeepsSentinel(t *testing.T) {
	err := WithMessage(ErrNotFound, "Event not found")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found", err.Error())
	assert.NoError(t, WithMessage(nil, "ignored"))
}
