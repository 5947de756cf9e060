package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// StatusError builds a provider error from a non-2xx response.
// 429 is a rate limit; 401 and 403 are authentication failures.
func StatusError(provider string, status int, message string) *domain.ProviderError {
	kind := domain.ProviderGeneric
	switch status {
	case http.StatusTooManyRequests:
		kind = domain.ProviderRateLimit
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.ProviderAuth
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return domain.NewProviderError(provider, kind, fmt.Errorf("status %d: %s", status, message))
}

// TransportError builds a provider error for a request that never got a response.
// Context cancellation is returned unchanged.
func TransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return domain.NewProviderError(provider, domain.ProviderConnectivity, err)
}

// DecodeError builds a provider error for an unreadable response body.
func DecodeError(provider string, err error) *domain.ProviderError {
	return domain.NewProviderError(provider, domain.ProviderGeneric, fmt.Errorf("decode response: %w", err))
}
