package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/internal/church/store/drivers/sqlite"
	"github.com/newcreaturechurch/church-api/pkg/cryptox"
	"github.com/newcreaturechurch/church-api/pkg/idx"
	"github.com/newcreaturechurch/church-api/pkg/jwtx"
)

type testServer struct {
	router *Router
	store  store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore("file:" + idx.New().String() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	sessions := &service.SessionService{
		Codec: jwtx.NewCodec(jwtx.Config{
			AccessSecret:  []byte("access-secret"),
			RefreshSecret: []byte("refresh-secret"),
		}),
		Store: st,
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	router := NewRouter("test", st, sessions, logger)
	router.UserService = &service.UserService{Store: st}
	router.EventService = &service.EventService{Store: st}
	router.SermonService = &service.SermonService{Store: st}
	router.PrayerService = &service.PrayerService{Store: st}
	router.ApplyRoutes()

	return &testServer{router: router, store: st}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func requireCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, code, decodeBody[errorBody](t, rec).Code)
}

// register creates an account through the API and returns the session.
func (ts *testServer) register(t *testing.T, email string) sessionResponse {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", registerRequest{
		Email:     email,
		Password:  "correct horse battery",
		FirstName: "Grace",
		LastName:  "Kim",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[sessionResponse](t, rec)
}

// seedStaff inserts a pastor account directly and returns a session for it.
func (ts *testServer) seedStaff(t *testing.T, email string) sessionResponse {
	t.Helper()

	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Pat",
		LastName:     "Shepherd",
		Role:         domain.RolePastor,
		Active:       true,
		JoinDate:     time.Now(),
	}
	require.NoError(t, ts.store.Users().CreateUser(context.Background(), u))

	rec := ts.do(t, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: "correct horse battery",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[sessionResponse](t, rec)
}

func TestAPI_RegisterAndProfile(t *testing.T) {
	ts := newTestServer(t)

	session := ts.register(t, "grace@example.com")
	require.Equal(t, "grace@example.com", session.User.Email)
	require.Equal(t, domain.RoleMember, session.User.Role)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)

	rec := ts.do(t, http.MethodGet, "/api/auth/profile", nil, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody[domain.PublicUser](t, rec)
	require.Equal(t, session.User.ID, profile.ID)
	require.Equal(t, "Grace Kim", profile.FullName)
}

func TestAPI_RegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "grace@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/register", registerRequest{
		Email:     "grace@example.com",
		Password:  "other password",
		FirstName: "Other",
		LastName:  "Person",
	}, "")
	requireCode(t, rec, http.StatusBadRequest, codeEmailExists)
}

func TestAPI_RegisterIgnoresRequestedRole(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", registerRequest{
		Email:     "grace@example.com",
		Password:  "correct horse battery",
		FirstName: "Grace",
		LastName:  "Kim",
		Role:      "admin",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decodeBody[sessionResponse](t, rec)
	require.Equal(t, domain.RoleMember, session.User.Role)
}

func TestAPI_RegisterMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", registerRequest{
		Email: "grace@example.com",
	}, "")
	requireCode(t, rec, http.StatusBadRequest, codeMissingFields)
}

func TestAPI_LoginFailures(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    "grace@example.com",
		Password: "wrong password",
	}, "")
	requireCode(t, rec, http.StatusUnauthorized, codeInvalidCredentials)

	// Unknown email gets the identical code.
	rec = ts.do(t, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    "nobody@example.com",
		Password: "wrong password",
	}, "")
	requireCode(t, rec, http.StatusUnauthorized, codeInvalidCredentials)

	// A deactivated account cannot log in.
	require.NoError(t, ts.store.Users().SetActive(context.Background(), session.User.ID, false))
	rec = ts.do(t, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    "grace@example.com",
		Password: "correct horse battery",
	}, "")
	requireCode(t, rec, http.StatusForbidden, codeAccountInactive)
}

func TestAPI_GateRejectsBadHeaders(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/auth/profile", nil, "")
	requireCode(t, rec, http.StatusUnauthorized, codeNoToken)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	out := httptest.NewRecorder()
	ts.router.ServeHTTP(out, req)
	requireCode(t, out, http.StatusUnauthorized, codeInvalidFormat)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer   ")
	out = httptest.NewRecorder()
	ts.router.ServeHTTP(out, req)
	requireCode(t, out, http.StatusUnauthorized, codeEmptyToken)

	rec = ts.do(t, http.MethodGet, "/api/auth/profile", nil, "garbage-token")
	requireCode(t, rec, http.StatusUnauthorized, codeInvalidToken)
}

func TestAPI_GateBlocksDeactivatedAccount(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	require.NoError(t, ts.store.Users().SetActive(context.Background(), session.User.ID, false))

	rec := ts.do(t, http.MethodGet, "/api/auth/profile", nil, session.AccessToken)
	requireCode(t, rec, http.StatusForbidden, codeAccountInactive)
}

func TestAPI_RefreshRotation(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/refresh", refreshRequest{
		RefreshToken: session.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pair := decodeBody[domain.TokenPair](t, rec)
	require.NotEqual(t, session.RefreshToken, pair.RefreshToken)

	// The consumed token is dead.
	rec = ts.do(t, http.MethodPost, "/api/auth/refresh", refreshRequest{
		RefreshToken: session.RefreshToken,
	}, "")
	requireCode(t, rec, http.StatusUnauthorized, codeInvalidRefreshToken)

	// No token at all is a 400, not a 401.
	rec = ts.do(t, http.MethodPost, "/api/auth/refresh", refreshRequest{}, "")
	requireCode(t, rec, http.StatusBadRequest, codeMissingRefreshToken)
}

func TestAPI_RefreshDeactivatedAccount(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	require.NoError(t, ts.store.Users().SetActive(context.Background(), session.User.ID, false))

	// A gone or deactivated account behind valid claims reads the same.
	rec := ts.do(t, http.MethodPost, "/api/auth/refresh", refreshRequest{
		RefreshToken: session.RefreshToken,
	}, "")
	requireCode(t, rec, http.StatusUnauthorized, codeUserNotFound)
}

func TestAPI_LogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", refreshRequest{
		RefreshToken: session.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/refresh", refreshRequest{
		RefreshToken: session.RefreshToken,
	}, "")
	requireCode(t, rec, http.StatusUnauthorized, codeInvalidRefreshToken)
}

func TestAPI_UpdateProfile(t *testing.T) {
	ts := newTestServer(t)
	session := ts.register(t, "grace@example.com")

	rec := ts.do(t, http.MethodPut, "/api/auth/profile", updateProfileRequest{
		FirstName: "Gracie",
		LastName:  "Kim",
		Phone:     "0400000000",
	}, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decodeBody[domain.PublicUser](t, rec)
	require.Equal(t, "Gracie", profile.FirstName)
	require.Equal(t, "0400000000", profile.Phone)

	// Partial body: only the provided field changes.
	rec = ts.do(t, http.MethodPut, "/api/auth/profile", updateProfileRequest{
		Phone: "0400111222",
	}, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile = decodeBody[domain.PublicUser](t, rec)
	require.Equal(t, "Gracie", profile.FirstName)
	require.Equal(t, "Kim", profile.LastName)
	require.Equal(t, "0400111222", profile.Phone)
}

func TestAPI_RoleGateOnEvents(t *testing.T) {
	ts := newTestServer(t)
	member := ts.register(t, "member@example.com")
	staff := ts.seedStaff(t, "pastor@example.com")

	payload := eventPayload{
		Title: "Sunday Service",
		Date:  time.Now().Add(48 * time.Hour),
		Type:  "service",
	}

	rec := ts.do(t, http.MethodPost, "/api/events", payload, member.AccessToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
	denied := decodeBody[permissionDenied](t, rec)
	require.Equal(t, codeInsufficientPerms, denied.Code)
	require.Equal(t, "member", denied.CurrentRole)
	require.Equal(t, []string{"admin", "pastor"}, denied.RequiredRoles)

	rec = ts.do(t, http.MethodPost, "/api/events", payload, staff.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[eventResponse](t, rec)
	require.Equal(t, staff.User.ID, created.Organizer)
}

func TestAPI_EventVisibilityAndJoin(t *testing.T) {
	ts := newTestServer(t)
	member := ts.register(t, "member@example.com")
	staff := ts.seedStaff(t, "pastor@example.com")

	hidden := false
	rec := ts.do(t, http.MethodPost, "/api/events", eventPayload{
		Title:  "Staff Planning",
		Date:   time.Now().Add(24 * time.Hour),
		Type:   "special-event",
		Public: &hidden,
	}, staff.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	planning := decodeBody[eventResponse](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/events", eventPayload{
		Title: "Sunday Service",
		Date:  time.Now().Add(48 * time.Hour),
		Type:  "service",
	}, staff.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	sunday := decodeBody[eventResponse](t, rec)

	// Anonymous callers only see the public event.
	rec = ts.do(t, http.MethodGet, "/api/events", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]eventResponse](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/api/events/"+planning.ID, nil, "")
	requireCode(t, rec, http.StatusNotFound, codeNotFound)

	// Members see both and can join.
	rec = ts.do(t, http.MethodGet, "/api/events", nil, member.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]eventResponse](t, rec), 2)

	rec = ts.do(t, http.MethodPost, "/api/events/"+sunday.ID+"/join", nil, member.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	joined := decodeBody[eventResponse](t, rec)
	require.Equal(t, []string{member.User.ID}, joined.Attendees)

	rec = ts.do(t, http.MethodPost, "/api/events/"+sunday.ID+"/join", nil, member.AccessToken)
	requireCode(t, rec, http.StatusConflict, codeAlreadyJoined)

	rec = ts.do(t, http.MethodGet, "/api/events/mine", nil, member.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]eventResponse](t, rec), 1)
}

func TestAPI_SermonViewCounter(t *testing.T) {
	ts := newTestServer(t)
	staff := ts.seedStaff(t, "pastor@example.com")

	rec := ts.do(t, http.MethodPost, "/api/sermons", sermonPayload{
		Title:     "On Grace",
		Scripture: "Ephesians 2:8-9",
		Date:      time.Now(),
	}, staff.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sermon := decodeBody[sermonResponse](t, rec)
	require.Equal(t, staff.User.ID, sermon.Preacher)

	rec = ts.do(t, http.MethodPost, "/api/sermons/"+sermon.ID+"/view", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decodeBody[sermonResponse](t, rec).ViewCount)

	rec = ts.do(t, http.MethodGet, "/api/sermons/"+sermon.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decodeBody[sermonResponse](t, rec).ViewCount)
}

func TestAPI_PrayerRequestsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/prayer-requests", nil, "")
	requireCode(t, rec, http.StatusUnauthorized, codeNoToken)
}

func TestAPI_PrayerRequestLifecycle(t *testing.T) {
	ts := newTestServer(t)
	requester := ts.register(t, "grace@example.com")
	supporter := ts.register(t, "member@example.com")
	staff := ts.seedStaff(t, "pastor@example.com")

	rec := ts.do(t, http.MethodPost, "/api/prayer-requests", prayerPayload{
		Title:     "Healing",
		Category:  "personal",
		Anonymous: true,
	}, requester.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[prayerResponse](t, rec)

	// Anonymous requests hide the requester from other members.
	rec = ts.do(t, http.MethodGet, "/api/prayer-requests/"+created.ID, nil, supporter.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[prayerResponse](t, rec).Requester)

	rec = ts.do(t, http.MethodPost, "/api/prayer-requests/"+created.ID+"/pray", nil, supporter.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decodeBody[prayerResponse](t, rec).PrayerCount)

	// Answering is staff-only.
	rec = ts.do(t, http.MethodPost, "/api/prayer-requests/"+created.ID+"/answer", answerPayload{
		Notes: "Fully recovered",
	}, supporter.AccessToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/prayer-requests/"+created.ID+"/answer", answerPayload{
		Notes: "Fully recovered",
	}, staff.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	answered := decodeBody[prayerResponse](t, rec)
	require.True(t, answered.Answered)
	require.Equal(t, "Fully recovered", answered.AnswerNotes)
}

func TestAPI_LoginRateLimit(t *testing.T) {
	ts := newTestServer(t)

	body := loginRequest{Email: "nobody@example.com", Password: "wrong"}
	var last *httptest.ResponseRecorder
	for range 6 {
		last = ts.do(t, http.MethodPost, "/api/auth/login", body, "")
	}
	requireCode(t, last, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED")
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestAPI_HealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz", "/api/health"} {
		rec := ts.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}
