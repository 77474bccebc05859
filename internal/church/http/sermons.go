package http

import (
	"net/http"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// SermonsHandler serves the /api/sermons endpoints.
type SermonsHandler struct {
	Sermons *service.SermonService
}

type sermonPayload struct {
	Title       string    `json:"title"`
	Scripture   string    `json:"scripture"`
	Preacher    string    `json:"preacher"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	AudioURL    string    `json:"audioUrl"`
	Tags        []string  `json:"tags"`
	Public      *bool     `json:"public"`
	Duration    int       `json:"duration"`
	Series      string    `json:"series"`
	SeriesPart  int       `json:"seriesPart"`
}

func (p sermonPayload) toDomain() domain.Sermon {
	public := true
	if p.Public != nil {
		public = *p.Public
	}
	return domain.Sermon{
		Title:       p.Title,
		Scripture:   p.Scripture,
		Preacher:    p.Preacher,
		Date:        p.Date,
		Description: p.Description,
		VideoURL:    p.VideoURL,
		AudioURL:    p.AudioURL,
		Tags:        p.Tags,
		Public:      public,
		Duration:    p.Duration,
		Series:      p.Series,
		SeriesPart:  p.SeriesPart,
	}
}

type sermonResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Scripture   string    `json:"scripture,omitempty"`
	Preacher    string    `json:"preacher"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	Tags        []string  `json:"tags"`
	Public      bool      `json:"public"`
	ViewCount   int       `json:"viewCount"`
	Duration    int       `json:"duration,omitempty"`
	Series      string    `json:"series,omitempty"`
	SeriesPart  int       `json:"seriesPart,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSermonResponse(s domain.Sermon) sermonResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return sermonResponse{
		ID:          s.ID,
		Title:       s.Title,
		Scripture:   s.Scripture,
		Preacher:    s.Preacher,
		Date:        s.Date,
		Description: s.Description,
		VideoURL:    s.VideoURL,
		AudioURL:    s.AudioURL,
		Tags:        tags,
		Public:      s.Public,
		ViewCount:   s.ViewCount,
		Duration:    s.Duration,
		Series:      s.Series,
		SeriesPart:  s.SeriesPart,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// HandleList godoc
//
//	@Summary	List sermons
//	@Description	Returns the sermon archive, newest first. Anonymous callers only see public sermons.
//	@Tags		Sermons
//	@Produce	json
//	@Success	200	{array}	sermonResponse
//	@Router		/api/sermons [get].
func (h *SermonsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, authenticated := IdentityFrom(r.Context())
	sermons, err := h.Sermons.ListSermons(r.Context(), authenticated)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]sermonResponse, len(sermons))
	for i, s := range sermons {
		out[i] = toSermonResponse(s)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get one sermon
//	@Tags		Sermons
//	@Produce	json
//	@Param		id	path		string	true	"Sermon id"
//	@Success	200	{object}	sermonResponse
//	@Failure	404	{object}	httpx.ErrorBody	"NOT_FOUND"
//	@Router		/api/sermons/{id} [get].
func (h *SermonsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, authenticated := IdentityFrom(r.Context())
	sermon, err := h.Sermons.GetSermon(r.Context(), authenticated, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSermonResponse(sermon))
}

// HandleView godoc
//
//	@Summary	Count a sermon view
//	@Tags		Sermons
//	@Produce	json
//	@Param		id	path		string	true	"Sermon id"
//	@Success	200	{object}	sermonResponse
//	@Router		/api/sermons/{id}/view [post].
func (h *SermonsHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	_, authenticated := IdentityFrom(r.Context())
	sermon, err := h.Sermons.RecordView(r.Context(), authenticated, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSermonResponse(sermon))
}

// HandleCreate godoc
//
//	@Summary	Archive a sermon
//	@Tags		Sermons
//	@Accept		json
//	@Produce	json
//	@Param		body	body		sermonPayload	true	"Sermon details"
//	@Success	201		{object}	sermonResponse
//	@Security	BearerAuth
//	@Router		/api/sermons [post].
func (h *SermonsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
		return
	}

	var payload sermonPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	sermon, err := h.Sermons.CreateSermon(r.Context(), id, payload.toDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSermonResponse(sermon))
}

// HandleUpdate godoc
//
//	@Summary	Update a sermon
//	@Tags		Sermons
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Sermon id"
//	@Param		body	body		sermonPayload	true	"Sermon details"
//	@Success	200		{object}	sermonResponse
//	@Security	BearerAuth
//	@Router		/api/sermons/{id} [put].
func (h *SermonsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload sermonPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	sermon := payload.toDomain()
	sermon.ID = r.PathValue("id")

	updated, err := h.Sermons.UpdateSermon(r.Context(), sermon)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSermonResponse(updated))
}

// HandleDelete godoc
//
//	@Summary	Delete a sermon
//	@Tags		Sermons
//	@Produce	json
//	@Param		id	path		string	true	"Sermon id"
//	@Success	200	{object}	messageResponse
//	@Security	BearerAuth
//	@Router		/api/sermons/{id} [delete].
func (h *SermonsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sermons.DeleteSermon(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Sermon deleted"})
}
