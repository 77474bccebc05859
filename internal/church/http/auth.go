package http

import (
	"net/http"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	Sessions *service.SessionService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	// Accepted for wire compatibility but never honored: accounts always
	// start as members. Staff roles are granted out of band.
	Role string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	ExpiresIn    int               `json:"expiresIn"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleRegister godoc
//
//	@Summary		Register a member account
//	@Description	Creates a new member account and opens a session for it. New accounts always start with the member role; a role field in the body is ignored.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account details"
//	@Success		201		{object}	sessionResponse
//	@Failure		400		{object}	httpx.ErrorBody	"MISSING_FIELDS, EMAIL_EXISTS"
//	@Failure		429		{object}	httpx.ErrorBody	"RATE_LIMIT_EXCEEDED"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.Sessions.Register(r.Context(),
		req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, sessionResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and opens a new session. Unknown email and wrong password fail identically.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	sessionResponse
//	@Failure		400		{object}	httpx.ErrorBody	"MISSING_CREDENTIALS"
//	@Failure		401		{object}	httpx.ErrorBody	"INVALID_CREDENTIALS"
//	@Failure		403		{object}	httpx.ErrorBody	"ACCOUNT_INACTIVE"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// HandleRefresh godoc
//
//	@Summary		Rotate a session
//	@Description	Exchanges a refresh token for a new token pair. The presented token is consumed; replaying it fails.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		400		{object}	httpx.ErrorBody	"MISSING_REFRESH_TOKEN"
//	@Failure		401		{object}	httpx.ErrorBody	"INVALID_REFRESH_TOKEN, TOKEN_EXPIRED"
//	@Router			/api/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, codeMissingRefreshToken, "Refresh token is required")
		return
	}

	pair, err := h.Sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the presented refresh token. Always succeeds from the caller's side.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	messageResponse
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// A missing or malformed body is fine; there is just nothing to revoke.
	_ = decodeBestEffort(r, &req)

	if err := h.Sessions.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
