package http

import (
	"errors"
	"net/http"

	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
	"github.com/newcreaturechurch/church-api/pkg/slogx"
)

// Machine-readable error codes. Clients branch on these, never on messages.
const (
	codeMissingFields       = "MISSING_FIELDS"
	codeEmailExists         = "EMAIL_EXISTS"
	codeMissingCredentials  = "MISSING_CREDENTIALS"
	codeInvalidCredentials  = "INVALID_CREDENTIALS"
	codeAccountInactive     = "ACCOUNT_INACTIVE"
	codeMissingRefreshToken = "MISSING_REFRESH_TOKEN"
	codeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	codeTokenExpired        = "TOKEN_EXPIRED"
	codeInvalidToken        = "INVALID_TOKEN"
	codeUserNotFound        = "USER_NOT_FOUND"
	codeAuthRequired        = "AUTH_REQUIRED"
	codeNoToken             = "NO_TOKEN"
	codeInvalidFormat       = "INVALID_FORMAT"
	codeEmptyToken          = "EMPTY_TOKEN"
	codeInsufficientPerms   = "INSUFFICIENT_PERMISSIONS"
	codeNotFound            = "NOT_FOUND"
	codeInternalError       = "INTERNAL_SERVER_ERROR"
	codeInvalidBody         = "INVALID_BODY"
	codeEventFull           = "EVENT_FULL"
	codeAlreadyJoined       = "ALREADY_JOINED"
)

// writeServiceError is the single translation point from service sentinels to
// HTTP responses. Anything unmatched is a 500 and gets logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		httpx.WriteError(w, http.StatusBadRequest, codeMissingFields, "Required fields are missing")
	case errors.Is(err, service.ErrMissingCredentials):
		httpx.WriteError(w, http.StatusBadRequest, codeMissingCredentials, "Email and password are required")
	case errors.Is(err, service.ErrEmailExists):
		httpx.WriteError(w, http.StatusBadRequest, codeEmailExists, "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, service.ErrInactiveAccount):
		httpx.WriteError(w, http.StatusForbidden, codeAccountInactive, "Account is deactivated")
	case errors.Is(err, service.ErrRefreshExpired):
		httpx.WriteError(w, http.StatusUnauthorized, codeTokenExpired, "Refresh token has expired")
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidRefreshToken, "Invalid refresh token")
	case errors.Is(err, service.ErrTokenExpired):
		httpx.WriteError(w, http.StatusUnauthorized, codeTokenExpired, "Token has expired")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidToken, "Invalid token")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusUnauthorized, codeUserNotFound, "User no longer exists")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, codeInsufficientPerms, "You do not have permission to do this")
	case errors.Is(err, service.ErrInvalidEventType):
		httpx.WriteError(w, http.StatusBadRequest, codeMissingFields, "Invalid event type or recurring pattern")
	case errors.Is(err, service.ErrInvalidCategory):
		httpx.WriteError(w, http.StatusBadRequest, codeMissingFields, "Invalid prayer category")
	case errors.Is(err, service.ErrEventFull):
		httpx.WriteError(w, http.StatusConflict, codeEventFull, "Event has reached its attendee limit")
	case errors.Is(err, service.ErrAlreadyJoined):
		httpx.WriteError(w, http.StatusConflict, codeAlreadyJoined, "Already registered for this event")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, codeNotFound, "Resource not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, codeInternalError, "Something went wrong")
	}
}
