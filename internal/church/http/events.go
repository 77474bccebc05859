package http

import (
	"net/http"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// EventsHandler serves the /api/events endpoints.
type EventsHandler struct {
	Events *service.EventService
}

type eventPayload struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Location         string    `json:"location"`
	Type             string    `json:"type"`
	Recurring        bool      `json:"recurring"`
	RecurringPattern string    `json:"recurringPattern"`
	Public           *bool     `json:"public"`
	MaxAttendees     int       `json:"maxAttendees"`
	Notes            string    `json:"notes"`
}

func (p eventPayload) toDomain() domain.Event {
	public := true
	if p.Public != nil {
		public = *p.Public
	}
	return domain.Event{
		Title:            p.Title,
		Description:      p.Description,
		Date:             p.Date,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		Location:         p.Location,
		Type:             domain.EventType(p.Type),
		Recurring:        p.Recurring,
		RecurringPattern: domain.RecurringPattern(p.RecurringPattern),
		Public:           public,
		MaxAttendees:     p.MaxAttendees,
		Notes:            p.Notes,
	}
}

type eventResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"startTime,omitempty"`
	EndTime          string    `json:"endTime,omitempty"`
	Location         string    `json:"location,omitempty"`
	Type             string    `json:"type"`
	Recurring        bool      `json:"recurring"`
	RecurringPattern string    `json:"recurringPattern,omitempty"`
	Public           bool      `json:"public"`
	MaxAttendees     int       `json:"maxAttendees"`
	Attendees        []string  `json:"attendees"`
	Organizer        string    `json:"organizer"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toEventResponse(e domain.Event) eventResponse {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return eventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Date:             e.Date,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Location:         e.Location,
		Type:             string(e.Type),
		Recurring:        e.Recurring,
		RecurringPattern: string(e.RecurringPattern),
		Public:           e.Public,
		MaxAttendees:     e.MaxAttendees,
		Attendees:        attendees,
		Organizer:        e.Organizer,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	return out
}

// HandleList godoc
//
//	@Summary	List events
//	@Description	Returns the church calendar ordered by date. Anonymous callers only see public events.
//	@Tags		Events
//	@Produce	json
//	@Success	200	{array}	eventResponse
//	@Router		/api/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, authenticated := IdentityFrom(r.Context())
	events, err := h.Events.ListEvents(r.Context(), authenticated)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponses(events))
}

// HandleListMine godoc
//
//	@Summary	List events the caller has joined
//	@Tags		Events
//	@Produce	json
//	@Success	200	{array}	eventResponse
//	@Security	BearerAuth
//	@Router		/api/events/mine [get].
func (h *EventsHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}
	events, err := h.Events.ListMyEvents(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponses(events))
}

// HandleGet godoc
//
//	@Summary	Get one event
//	@Tags		Events
//	@Produce	json
//	@Param		id	path		string	true	"Event id"
//	@Success	200	{object}	eventResponse
//	@Failure	404	{object}	httpx.ErrorBody	"NOT_FOUND"
//	@Router		/api/events/{id} [get].
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, authenticated := IdentityFrom(r.Context())
	event, err := h.Events.GetEvent(r.Context(), authenticated, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleCreate godoc
//
//	@Summary	Create an event
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Param		body	body		eventPayload	true	"Event details"
//	@Success	201		{object}	eventResponse
//	@Failure	403		{object}	httpx.ErrorBody	"INSUFFICIENT_PERMISSIONS"
//	@Security	BearerAuth
//	@Router		/api/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	var payload eventPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	event, err := h.Events.CreateEvent(r.Context(), id, payload.toDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEventResponse(event))
}

// HandleUpdate godoc
//
//	@Summary	Update an event
//	@Tags		Events
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Event id"
//	@Param		body	body		eventPayload	true	"Event details"
//	@Success	200		{object}	eventResponse
//	@Security	BearerAuth
//	@Router		/api/events/{id} [put].
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	var payload eventPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	event := payload.toDomain()
	event.ID = r.PathValue("id")

	updated, err := h.Events.UpdateEvent(r.Context(), id, event)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponse(updated))
}

// HandleDelete godoc
//
//	@Summary	Delete an event
//	@Tags		Events
//	@Produce	json
//	@Param		id	path		string	true	"Event id"
//	@Success	200	{object}	messageResponse
//	@Security	BearerAuth
//	@Router		/api/events/{id} [delete].
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	if err := h.Events.DeleteEvent(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Event deleted"})
}

// HandleJoin godoc
//
//	@Summary	Join an event
//	@Tags		Events
//	@Produce	json
//	@Param		id	path		string	true	"Event id"
//	@Success	200	{object}	eventResponse
//	@Failure	409	{object}	httpx.ErrorBody	"EVENT_FULL, ALREADY_JOINED"
//	@Security	BearerAuth
//	@Router		/api/events/{id}/join [post].
func (h *EventsHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	event, err := h.Events.Join(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleLeave godoc
//
//	@Summary	Leave an event
//	@Tags		Events
//	@Produce	json
//	@Param		id	path		string	true	"Event id"
//	@Success	200	{object}	eventResponse
//	@Security	BearerAuth
//	@Router		/api/events/{id}/leave [post].
func (h *EventsHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	event, err := h.Events.Leave(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}
