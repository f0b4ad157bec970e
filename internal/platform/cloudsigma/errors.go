package cloudsigma

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/occopus/sigmanode/internal/util/retry"
)

// ErrRetryBudgetExhausted is wrapped by errors of operations that failed on
// every attempt.
var ErrRetryBudgetExhausted = retry.ErrExhausted

// APIError describes a single failed call: an unexpected HTTP status, or a
// transport failure (StatusCode 0, Err set).
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s failed! HTTP response code/message: %d/%s. Server response: %s.",
		e.Operation, e.StatusCode, statusText(e.StatusCode), e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "(undefined http code returned by CloudSigma API)"
}

// IsNotFound reports whether err carries a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsExhausted reports whether err is the result of a spent retry budget.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrRetryBudgetExhausted)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func hasStatus(err error, code int) bool {
	return err != nil && StatusCode(err) == code
}
