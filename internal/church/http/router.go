package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
	"github.com/newcreaturechurch/church-api/pkg/slogx"

	_ "github.com/newcreaturechurch/church-api/api/church" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	gate  *Gate

	SessionService *service.SessionService
	UserService    *service.UserService
	EventService   *service.EventService
	SermonService  *service.SermonService
	PrayerService  *service.PrayerService
}

func NewRouter(buildVersion string, st store.Store, sessions *service.SessionService, logger *slog.Logger) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		store:          st,
		gate:           &Gate{Sessions: sessions},
		SessionService: sessions,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEvents()
	r.registerSermons()
	r.registerPrayerRequests()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			New Creature Church API
//	@version		1.0.0
//	@description	Web presence API for New Creature Church: member accounts with JWT
//	@description	access/refresh sessions, church calendar, sermon archive, and prayer
//	@description	requests.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	auth := &AuthHandler{Sessions: r.SessionService}
	profile := &ProfileHandler{Users: r.UserService}

	// Credential endpoints carry the strict limit; they are the brute-force
	// surface.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(auth.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(auth.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(http.HandlerFunc(auth.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("POST /api/auth/logout", http.HandlerFunc(auth.HandleLogout))

	r.Mux.Handle("GET /api/auth/profile",
		httpx.Chain(http.HandlerFunc(profile.HandleGet),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("PUT /api/auth/profile",
		httpx.Chain(http.HandlerFunc(profile.HandlePut),
			r.gate.RequireAuth,
		))
}

func (r *Router) registerEvents() {
	events := &EventsHandler{Events: r.EventService}

	r.Mux.Handle("GET /api/events",
		httpx.Chain(http.HandlerFunc(events.HandleList),
			r.gate.OptionalAuth,
		))
	r.Mux.Handle("GET /api/events/mine",
		httpx.Chain(http.HandlerFunc(events.HandleListMine),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("GET /api/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleGet),
			r.gate.OptionalAuth,
		))
	r.Mux.Handle("POST /api/events",
		httpx.Chain(http.HandlerFunc(events.HandleCreate),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
	r.Mux.Handle("PUT /api/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleUpdate),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
	r.Mux.Handle("DELETE /api/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleDelete),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
	r.Mux.Handle("POST /api/events/{id}/join",
		httpx.Chain(http.HandlerFunc(events.HandleJoin),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("POST /api/events/{id}/leave",
		httpx.Chain(http.HandlerFunc(events.HandleLeave),
			r.gate.RequireAuth,
		))
}

func (r *Router) registerSermons() {
	sermons := &SermonsHandler{Sermons: r.SermonService}

	r.Mux.Handle("GET /api/sermons",
		httpx.Chain(http.HandlerFunc(sermons.HandleList),
			r.gate.OptionalAuth,
		))
	r.Mux.Handle("GET /api/sermons/{id}",
		httpx.Chain(http.HandlerFunc(sermons.HandleGet),
			r.gate.OptionalAuth,
		))
	r.Mux.Handle("POST /api/sermons/{id}/view",
		httpx.Chain(http.HandlerFunc(sermons.HandleView),
			r.gate.OptionalAuth,
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /api/sermons",
		httpx.Chain(http.HandlerFunc(sermons.HandleCreate),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
	r.Mux.Handle("PUT /api/sermons/{id}",
		httpx.Chain(http.HandlerFunc(sermons.HandleUpdate),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
	r.Mux.Handle("DELETE /api/sermons/{id}",
		httpx.Chain(http.HandlerFunc(sermons.HandleDelete),
			r.gate.RequireAuth,
			r.gate.RequireAdminOrPastor(),
		))
}

func (r *Router) registerPrayerRequests() {
	prayers := &PrayersHandler{Prayers: r.PrayerService}

	r.Mux.Handle("GET /api/prayer-requests",
		httpx.Chain(http.HandlerFunc(prayers.HandleList),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("GET /api/prayer-requests/mine",
		httpx.Chain(http.HandlerFunc(prayers.HandleListMine),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("GET /api/prayer-requests/{id}",
		httpx.Chain(http.HandlerFunc(prayers.HandleGet),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("POST /api/prayer-requests",
		httpx.Chain(http.HandlerFunc(prayers.HandleCreate),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("PUT /api/prayer-requests/{id}",
		httpx.Chain(http.HandlerFunc(prayers.HandleUpdate),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("DELETE /api/prayer-requests/{id}",
		httpx.Chain(http.HandlerFunc(prayers.HandleDelete),
			r.gate.RequireAuth,
		))
	r.Mux.Handle("POST /api/prayer-requests/{id}/pray",
		httpx.Chain(http.HandlerFunc(prayers.HandlePray),
			r.gate.RequireAuth,
		))
	// The service decides who may answer: the requester or church staff.
	r.Mux.Handle("POST /api/prayer-requests/{id}/answer",
		httpx.Chain(http.HandlerFunc(prayers.HandleAnswer),
			r.gate.RequireAuth,
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store, r.startTime, r.buildVersion))

	// Compatibility alias for older clients.
	r.Mux.Handle("GET /api/health", LivezHandler(r.startTime, r.buildVersion))
}
