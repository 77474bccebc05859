package churchsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the service. Code is the
// machine-readable error code clients should branch on; Message is for
// humans only.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "INVALID_CREDENTIALS").
	Code string `json:"code"`

	// Message is the human-readable description.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse builds an *APIError from a non-2xx response body. Bodies
// that are not the standard error shape still produce a usable error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "UNEXPECTED_RESPONSE"
		apiErr.Message = fmt.Sprintf("unexpected response: %s %s", resp.Status, string(body))
	}
	return apiErr
}
