package services

import (
	"testing"

	"postboard/app/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireDomainError asserts err is a domain error with status and message.
func requireDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

// requireInfraError asserts err is not a domain error.
func requireInfraError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	_, ok := errs.AsHTTPError(err)
	assert.False(t, ok, "expected an infrastructure error, got %v", err)
}
