package http

import (
	"net/http"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// PrayersHandler serves the /api/prayer-requests endpoints. Every route sits
// behind the mandatory gate.
type PrayersHandler struct {
	Prayers *service.PrayerService
}

type prayerPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Anonymous   bool       `json:"anonymous"`
	Urgent      bool       `json:"urgent"`
	Public      bool       `json:"public"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (p prayerPayload) toDomain() domain.PrayerRequest {
	return domain.PrayerRequest{
		Title:       p.Title,
		Description: p.Description,
		Category:    domain.PrayerCategory(p.Category),
		Anonymous:   p.Anonymous,
		Urgent:      p.Urgent,
		Public:      p.Public,
		ExpiresAt:   p.ExpiresAt,
	}
}

type answerPayload struct {
	Notes string `json:"notes"`
}

type prayerResponse struct {
	ID          string     `json:"id"`
	Requester   string     `json:"requester,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Anonymous   bool       `json:"anonymous"`
	Urgent      bool       `json:"urgent"`
	Answered    bool       `json:"answered"`
	AnswerNotes string     `json:"answerNotes,omitempty"`
	AnsweredAt  *time.Time `json:"answeredAt,omitempty"`
	PrayerCount int        `json:"prayerCount"`
	PrayedBy    []string   `json:"prayedBy"`
	Public      bool       `json:"public"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toPrayerResponse(p domain.PrayerRequest) prayerResponse {
	prayedBy := p.PrayedBy
	if prayedBy == nil {
		prayedBy = []string{}
	}
	return prayerResponse{
		ID:          p.ID,
		Requester:   p.Requester,
		Title:       p.Title,
		Description: p.Description,
		Category:    string(p.Category),
		Anonymous:   p.Anonymous,
		Urgent:      p.Urgent,
		Answered:    p.Answered,
		AnswerNotes: p.AnswerNotes,
		AnsweredAt:  p.AnsweredAt,
		PrayerCount: p.PrayerCount,
		PrayedBy:    prayedBy,
		Public:      p.Public,
		ExpiresAt:   p.ExpiresAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPrayerResponses(list []domain.PrayerRequest) []prayerResponse {
	out := make([]prayerResponse, len(list))
	for i, p := range list {
		out[i] = toPrayerResponse(p)
	}
	return out
}

// requireIdentity pulls the gate-admitted identity or writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
	}
	return id, ok
}

// HandleList godoc
//
//	@Summary	List active prayer requests
//	@Description	Urgent requests first, then newest. Expired requests are excluded.
//	@Tags		Prayer Requests
//	@Produce	json
//	@Success	200	{array}	prayerResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests [get].
func (h *PrayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	list, err := h.Prayers.ListRequests(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponses(list))
}

// HandleListMine godoc
//
//	@Summary	List the caller's own prayer requests
//	@Tags		Prayer Requests
//	@Produce	json
//	@Success	200	{array}	prayerResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/mine [get].
func (h *PrayersHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	list, err := h.Prayers.ListMyRequests(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponses(list))
}

// HandleGet godoc
//
//	@Summary	Get one prayer request
//	@Tags		Prayer Requests
//	@Produce	json
//	@Param		id	path		string	true	"Request id"
//	@Success	200	{object}	prayerResponse
//	@Failure	404	{object}	httpx.ErrorBody	"NOT_FOUND"
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/{id} [get].
func (h *PrayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	p, err := h.Prayers.GetRequest(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponse(p))
}

// HandleCreate godoc
//
//	@Summary	File a prayer request
//	@Tags		Prayer Requests
//	@Accept		json
//	@Produce	json
//	@Param		body	body		prayerPayload	true	"Request details"
//	@Success	201		{object}	prayerResponse
//	@Failure	400		{object}	httpx.ErrorBody	"MISSING_FIELDS"
//	@Security	BearerAuth
//	@Router		/api/prayer-requests [post].
func (h *PrayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var payload prayerPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	p, err := h.Prayers.CreateRequest(r.Context(), id, payload.toDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPrayerResponse(p))
}

// HandleUpdate godoc
//
//	@Summary	Update a prayer request
//	@Description	Only the requester or church staff may update a request.
//	@Tags		Prayer Requests
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Request id"
//	@Param		body	body		prayerPayload	true	"Request details"
//	@Success	200		{object}	prayerResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/{id} [put].
func (h *PrayersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var payload prayerPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	p := payload.toDomain()
	p.ID = r.PathValue("id")

	updated, err := h.Prayers.UpdateRequest(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponse(updated))
}

// HandleDelete godoc
//
//	@Summary	Delete a prayer request
//	@Tags		Prayer Requests
//	@Produce	json
//	@Param		id	path		string	true	"Request id"
//	@Success	200	{object}	messageResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/{id} [delete].
func (h *PrayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if err := h.Prayers.DeleteRequest(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Prayer request deleted"})
}

// HandlePray godoc
//
//	@Summary	Pray for a request
//	@Description	Records that the caller prayed. Praying twice is harmless and does not move the count.
//	@Tags		Prayer Requests
//	@Produce	json
//	@Param		id	path		string	true	"Request id"
//	@Success	200	{object}	prayerResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/{id}/pray [post].
func (h *PrayersHandler) HandlePray(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	p, err := h.Prayers.Pray(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponse(p))
}

// HandleAnswer godoc
//
//	@Summary	Mark a prayer request answered
//	@Tags		Prayer Requests
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Request id"
//	@Param		body	body		answerPayload	true	"Testimony notes"
//	@Success	200		{object}	prayerResponse
//	@Security	BearerAuth
//	@Router		/api/prayer-requests/{id}/answer [post].
func (h *PrayersHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var payload answerPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	p, err := h.Prayers.MarkAnswered(r.Context(), id, r.PathValue("id"), payload.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrayerResponse(p))
}
