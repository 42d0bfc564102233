package errors

import "fmt"

// ApiError is an upstream business-logic failure: the provider answered
// (often with HTTP 200) but signaled failure in the response body, e.g.
// "success": false or a non-OK status code. Parse failures of malformed
// provider responses are raised as ApiError too, so callers can tell domain
// failures apart from transport failures.
type ApiError struct {
	Provider string
	Code     string
	Message  string
}

func (e *ApiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s api error [%s]: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s api error: %s", e.Provider, e.Message)
}

func NewApiError(provider, code, message string) *ApiError {
	return &ApiError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// ValidationError is malformed caller input, raised before any provider is
// contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AggregateError is raised by the market aggregator only when every provider
// failed. Individual failures are otherwise logged and omitted from results.
type AggregateError struct {
	// Failures maps provider name to its failure
	Failures map[string]error
}

func (e *AggregateError) Error() string {
	msg := "all providers failed:"
	for provider, err := range e.Failures {
		msg += fmt.Sprintf(" %s: %v;", provider, err)
	}
	return msg
}

func NewAggregateError(failures map[string]error) *AggregateError {
	return &AggregateError{Failures: failures}
}
