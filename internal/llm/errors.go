package llm

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of provider-facing failure kinds. The boundary
// layer surfaces the kind verbatim so operators can tell "provider is down"
// from "we're being throttled" from "our prompt is malformed".
type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration_error"
	KindAuthentication ErrorKind = "authentication_error"
	KindRateLimit      ErrorKind = "rate_limit_error"
	KindBadRequest     ErrorKind = "bad_request_error"
	KindTimeout        ErrorKind = "timeout_error"
	KindConnectivity   ErrorKind = "connectivity_error"
	KindProvider       ErrorKind = "provider_error"
	KindEmptyResponse  ErrorKind = "empty_response_error"
)

// ProviderError is a typed failure from the model provider.
type ProviderError struct {
	Kind    ErrorKind
	Status  int    // HTTP status when applicable, else 0
	Message string
	Body    string // provider response body, for diagnostics
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the error kind from a provider failure chain.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
