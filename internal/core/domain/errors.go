package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexOutOfRange indicates a cursor or index outside the collection bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrPersistence indicates a durable write failed.
	// In-memory state is retained; an explicit reload resynchronises.
	ErrPersistence = errors.New("persistence failure")

	// Ingestion Errors.

	// ErrMalformedResponse indicates model output could not be coerced into
	// an array of objects. Nothing from the batch is ingested.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrInvalidPostEntry indicates a single response entry lacks required fields.
	// It is recorded as a rejection and never aborts the batch.
	ErrInvalidPostEntry = errors.New("invalid post entry")

	// Media Errors.

	// ErrDuplicateAsset indicates the destination key is already occupied.
	ErrDuplicateAsset = errors.New("asset already exists")

	// ErrUploadFailed indicates the object store rejected or failed an upload.
	ErrUploadFailed = errors.New("upload failed")

	// ErrStorageUnavailable indicates the object store is not configured.
	ErrStorageUnavailable = errors.New("object storage unavailable")

	// Provider Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the model provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthInvalid indicates the provider rejected the configured credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrProviderUnreachable indicates the provider could not be reached.
	ErrProviderUnreachable = errors.New("provider unreachable")

	// ErrProviderFailure indicates any other provider-side failure.
	ErrProviderFailure = errors.New("provider failure")
)

// ProviderErrorKind classifies failures from the model provider.
type ProviderErrorKind int

// Provider failure kinds. Each maps to a distinct operator-facing message.
const (
	ProviderGeneric ProviderErrorKind = iota
	ProviderRateLimit
	ProviderAuth
	ProviderConnectivity
)

// String returns the kind name.
func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderRateLimit:
		return "rate_limit"
	case ProviderAuth:
		return "auth"
	case ProviderConnectivity:
		return "connectivity"
	default:
		return "generic"
	}
}

// sentinel returns the domain sentinel matching this kind.
func (k ProviderErrorKind) sentinel() error {
	switch k {
	case ProviderRateLimit:
		return ErrRateLimited
	case ProviderAuth:
		return ErrAuthInvalid
	case ProviderConnectivity:
		return ErrProviderUnreachable
	default:
		return ErrProviderFailure
	}
}

// ProviderError is returned by LLM adapters when a completion fails.
// All kinds are terminal for the submission; there is no automatic retry.
type ProviderError struct {
	// Provider names the model provider (e.g. "openai").
	Provider string

	// Kind classifies the failure.
	Kind ProviderErrorKind

	// Err is the underlying cause.
	Err error
}

// NewProviderError creates a ProviderError.
func NewProviderError(provider string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

// Error implements error.
func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind.sentinel(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ProviderError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// MalformedResponseError carries the raw model text that could not be decoded.
type MalformedResponseError struct {
	// Raw is the text as handed to the parser.
	Raw string

	// Err is the decode failure.
	Err error
}

// Error implements error.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedResponse, e.Err)
}

// Unwrap returns the decode failure.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is matches ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// UserMessage maps an error to the message shown to an operator.
// Unknown errors fall back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, ErrAuthInvalid):
		return "Authentication failed. Please check your API key."
	case errors.Is(err, ErrProviderUnreachable):
		return "Failed to connect to the API. Please check your network connection."
	case errors.Is(err, ErrProviderFailure):
		return fmt.Sprintf("An error occurred: %v", err)
	case errors.Is(err, ErrLLMUnavailable):
		return "No model API key found. Please save the API key first."
	case errors.Is(err, ErrMalformedResponse):
		return fmt.Sprintf("Failed to parse the model response as JSON: %v", err)
	case errors.Is(err, ErrDuplicateAsset):
		return "A file with this name already exists in the bucket."
	case errors.Is(err, ErrUploadFailed):
		return fmt.Sprintf("Failed to upload file: %v", err)
	case errors.Is(err, ErrStorageUnavailable):
		return "Object storage is not configured. Please save storage credentials first."
	case errors.Is(err, ErrIndexOutOfRange):
		return "No post selected."
	case errors.Is(err, ErrPersistence):
		return fmt.Sprintf("Failed to save data: %v. Reload to resynchronise.", err)
	default:
		return err.Error()
	}
}
