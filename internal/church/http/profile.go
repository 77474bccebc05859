package http

import (
	"net/http"

	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// ProfileHandler serves the authenticated member's own profile.
type ProfileHandler struct {
	Users *service.UserService
}

// updateProfileRequest is a partial update; omitted or blank fields keep
// their stored value.
type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// HandleGet godoc
//
//	@Summary		Get own profile
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	domain.PublicUser
//	@Failure		401	{object}	httpx.ErrorBody	"NO_TOKEN, INVALID_TOKEN, TOKEN_EXPIRED"
//	@Security		BearerAuth
//	@Router			/api/auth/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}

// HandlePut godoc
//
//	@Summary		Update own profile
//	@Description	Updates first name, last name, and phone. Omitted or blank fields keep their stored value. Email, role, and active status are immutable from here.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		updateProfileRequest	true	"Profile fields to update"
//	@Success		200		{object}	domain.PublicUser
//	@Security		BearerAuth
//	@Router			/api/auth/profile [put].
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), id.UserID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
