package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrIndexOutOfRange", ErrIndexOutOfRange},
		{"ErrPersistence", ErrPersistence},
		{"ErrMalformedResponse", ErrMalformedResponse},
		{"ErrInvalidPostEntry", ErrInvalidPostEntry},
		{"ErrDuplicateAsset", ErrDuplicateAsset},
		{"ErrUploadFailed", ErrUploadFailed},
		{"ErrStorageUnavailable", ErrStorageUnavailable},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrAuthInvalid", ErrAuthInvalid},
		{"ErrProviderUnreachable", ErrProviderUnreachable},
		{"ErrProviderFailure", ErrProviderFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestProviderError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     ProviderErrorKind
		sentinel error
	}{
		{ProviderRateLimit, ErrRateLimited},
		{ProviderAuth, ErrAuthInvalid},
		{ProviderConnectivity, ErrProviderUnreachable},
		{ProviderGeneric, ErrProviderFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("submit: %w", NewProviderError("openai", tt.kind, errors.New("boom")))

			assert.ErrorIs(t, err, tt.sentinel)

			var perr *ProviderError
			assert.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestProviderError_DoesNotMatchOtherKinds(t *testing.T) {
	err := NewProviderError("openai", ProviderRateLimit, nil)

	assert.NotErrorIs(t, err, ErrAuthInvalid)
	assert.NotErrorIs(t, err, ErrProviderUnreachable)
	assert.NotErrorIs(t, err, ErrProviderFailure)
	assert.Equal(t, "openai: rate limited", err.Error())
}

func TestMalformedResponseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedResponseError{Raw: "[{", Err: cause}

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "malformed model response")
}

func TestUserMessage_DistinctProviderMessages(t *testing.T) {
	kinds := []ProviderErrorKind{ProviderRateLimit, ProviderAuth, ProviderConnectivity, ProviderGeneric}

	seen := make(map[string]bool)
	for _, kind := range kinds {
		msg := UserMessage(NewProviderError("openai", kind, errors.New("x")))
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message for %s", kind)
		seen[msg] = true
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Rate limit exceeded. Please try again later.",
		UserMessage(NewProviderError("openai", ProviderRateLimit, nil)))
	assert.Equal(t, "A file with this name already exists in the bucket.",
		UserMessage(fmt.Errorf("bind: %w", ErrDuplicateAsset)))
	assert.Contains(t, UserMessage(fmt.Errorf("%w: disk full", ErrPersistence)), "Reload")
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
