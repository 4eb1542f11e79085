package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"eventdesk/auth"
	"eventdesk/backend"
	"eventdesk/events"
	"eventdesk/models"
	"eventdesk/store"
	"eventdesk/utils"
)

// fakeBackend is an in-memory stand-in for the remote resource API.
type fakeBackend struct {
	mu     sync.Mutex
	events map[string]models.Event
	users  []models.User
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(map[string]models.Event)}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]models.Event, 0, len(b.events))
		for _, e := range b.events {
			out = append(out, e)
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("GET /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		e, ok := b.events[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(e)
	})
	mux.HandleFunc("POST /events", func(w http.ResponseWriter, r *http.Request) {
		var e models.Event
		_ = json.NewDecoder(r.Body).Decode(&e)
		b.mu.Lock()
		b.events[e.ID] = e
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	})
	mux.HandleFunc("PUT /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		var e models.Event
		_ = json.NewDecoder(r.Body).Decode(&e)
		e.ID = r.PathValue("id")
		b.mu.Lock()
		b.events[e.ID] = e
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(e)
	})
	mux.HandleFunc("DELETE /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		delete(b.events, r.PathValue("id"))
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(b.users)
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		_ = json.NewDecoder(r.Body).Decode(&u)
		b.mu.Lock()
		b.users = append(b.users, u)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(u)
	})

	return mux
}

func (b *fakeBackend) event(id string) (models.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.events[id]
	return e, ok
}

func (b *fakeBackend) seed(e models.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[e.ID] = e
}

type webApp struct {
	server *gin.Engine
	api    *fakeBackend
	store  *store.MemoryStore
}

func newWebApp(t *testing.T) *webApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := newFakeBackend()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client := backend.NewClient(srv.URL, 5*time.Second)
	st := store.NewMemoryStore()
	flash := utils.NewFlash(st)

	server := gin.New()
	server.LoadHTMLGlob("../templates/*.html")
	RegisterRoutes(server,
		auth.NewManager(backend.NewUsers(client), st),
		events.NewService(backend.NewEvents(client), st),
		flash, rdb)

	return &webApp{server: server, api: api, store: st}
}

func (a *webApp) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.server.ServeHTTP(w, req)
	return w
}

func (a *webApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.server.ServeHTTP(w, req)
	return w
}

func (a *webApp) login(t *testing.T, username, password string) {
	t.Helper()
	w := a.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/events", w.Header().Get("Location"))
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	app := newWebApp(t)

	for _, path := range []string{"/", "/events", "/my-events", "/new-event", "/no-such-page"} {
		w := app.get(path)
		require.Equal(t, http.StatusFound, w.Code, path)
		require.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestAdminSignInAndNavigation(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")

	w := app.get("/events")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	require.Contains(t, body, "Welcome Administrator")
	require.Contains(t, body, `href="/new-event"`)
	require.NotContains(t, body, `href="/my-events"`)

	// The notification shows exactly once.
	require.NotContains(t, app.get("/events").Body.String(), "Welcome Administrator")

	// Admins may open the event form.
	w = app.get("/new-event")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "New Event")
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	app := newWebApp(t)

	w := app.post("/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	require.Contains(t, app.get("/login").Body.String(), "Invalid username or password")
}

func TestRegularUserCannotReachAdminViews(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "user", "user123")

	for _, path := range []string{"/new-event", "/events/1/edit", "/events/1/delete"} {
		w := app.get(path)
		require.Equal(t, http.StatusFound, w.Code, path)
		require.Equal(t, "/events", w.Header().Get("Location"), path)
		require.Contains(t, app.get("/events").Body.String(), "Access denied", path)
	}

	body := app.get("/events").Body.String()
	require.Contains(t, body, `href="/my-events"`)
	require.NotContains(t, body, `href="/new-event"`)
}

func TestAdminCannotReachEnrollmentViews(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")

	w := app.get("/my-events")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/events", w.Header().Get("Location"))
	require.Contains(t, app.get("/events").Body.String(), "Access denied")
}

func TestEnrollDecrementsCapacityAndRecordsLocally(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "1", Name: "GopherCon", Description: "Go talks", Capacity: 3, Date: "2030-06-15"})
	app.login(t, "user", "user123")

	w := app.post("/events/1/enroll", nil)
	require.Equal(t, http.StatusFound, w.Code)

	e, ok := app.api.event("1")
	require.True(t, ok)
	require.Equal(t, 2, e.Capacity)

	raw, ok, err := app.store.Get(store.EnrollmentsKey("user"))
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `["1"]`, raw)

	body := app.get("/events").Body.String()
	require.Contains(t, body, "You are enrolled in GopherCon")

	require.Contains(t, app.get("/my-events").Body.String(), "GopherCon")
}

func TestEnrollTwiceKeepsOneSeat(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "1", Name: "GopherCon", Description: "Go talks", Capacity: 3, Date: "2030-06-15"})
	app.login(t, "user", "user123")

	app.post("/events/1/enroll", nil)
	app.get("/events")
	app.post("/events/1/enroll", nil)

	e, _ := app.api.event("1")
	require.Equal(t, 2, e.Capacity)
	require.Contains(t, app.get("/events").Body.String(), "Already enrolled")
}

func TestEnrollSoldOutEvent(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "1", Name: "Full House", Description: "No seats", Capacity: 0, Date: "2030-06-15"})
	app.login(t, "user", "user123")

	// The list renders a disabled button for exhausted events.
	require.Contains(t, app.get("/events").Body.String(), "Sold Out")

	app.post("/events/1/enroll", nil)

	e, _ := app.api.event("1")
	require.Equal(t, 0, e.Capacity)
	require.Contains(t, app.get("/events").Body.String(), "Event full")

	_, ok, err := app.store.Get(store.EnrollmentsKey("user"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCreateEventValidationFailureKeepsInput(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")

	w := app.post("/events", url.Values{
		"name":        {"X"},
		"description": {"A much longer description"},
		"capacity":    {"0"},
		"date":        {"2030-06-15"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "event name must be at least 2 characters")
	require.Contains(t, body, "event capacity must be greater than 0")
	require.Contains(t, body, "A much longer description")

	require.Empty(t, app.api.events)
}

func TestCreateEventAssignsSequentialID(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "7", Name: "Existing", Description: "already there", Capacity: 1, Date: "2030-01-01"})
	app.login(t, "admin", "admin123")

	w := app.post("/events", url.Values{
		"name":        {"GopherCon"},
		"description": {"A conference about Go"},
		"capacity":    {"100"},
		"date":        {"2030-06-15"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/events", w.Header().Get("Location"))

	e, ok := app.api.event("8")
	require.True(t, ok)
	require.Equal(t, "GopherCon", e.Name)
	require.Equal(t, 100, e.Capacity)

	require.Contains(t, app.get("/events").Body.String(), "Event created successfully")
}

func TestUpdateEventReplacesRecord(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "1", Name: "Old Name", Description: "old words", Capacity: 10, Date: "2030-01-01"})
	app.login(t, "admin", "admin123")

	w := app.post("/events/1", url.Values{
		"name":        {"New Name"},
		"description": {"fresh words"},
		"capacity":    {"12"},
		"date":        {"2030-02-02"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	e, _ := app.api.event("1")
	require.Equal(t, models.Event{ID: "1", Name: "New Name", Description: "fresh words", Capacity: 12, Date: "2030-02-02"}, e)
}

func TestDeleteEventNeedsConfirmation(t *testing.T) {
	app := newWebApp(t)
	app.api.seed(models.Event{ID: "1", Name: "Doomed", Description: "to be removed", Capacity: 5, Date: "2030-01-01"})
	app.login(t, "admin", "admin123")

	// The confirm page fronts the destructive action.
	w := app.get("/events/1/delete")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "This action cannot be undone!")

	// Submitting without the accept field cancels.
	app.post("/events/1/delete", nil)
	_, ok := app.api.event("1")
	require.True(t, ok)

	app.post("/events/1/delete", url.Values{"confirm": {"yes"}})
	_, ok = app.api.event("1")
	require.False(t, ok)
	require.Contains(t, app.get("/events").Body.String(), "The event has been deleted")
}

func TestRegisterThenSignIn(t *testing.T) {
	app := newWebApp(t)

	w := app.post("/register", url.Values{
		"name":     {"Jamie"},
		"username": {"jamie"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	// Registration does not sign the user in.
	w = app.get("/events")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	require.Contains(t, app.get("/login").Body.String(), "You can now sign in")

	require.Len(t, app.api.users, 1)
	require.Equal(t, models.RoleUser, app.api.users[0].Role)

	app.login(t, "jamie", "secret1")
	require.Contains(t, app.get("/events").Body.String(), "Welcome Jamie")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newWebApp(t)

	w := app.post("/register", url.Values{
		"name":     {"Impostor"},
		"username": {"admin"},
		"password": {"whatever"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?register=1", w.Header().Get("Location"))
	require.Contains(t, app.get("/login?register=1").Body.String(), "Username already exists")
	require.Empty(t, app.api.users)

	// The collision check is case-sensitive.
	w = app.post("/register", url.Values{
		"name":     {"Other Admin"},
		"username": {"Admin"},
		"password": {"whatever"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	require.Len(t, app.api.users, 1)
}

func TestLogoutFlow(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")
	app.get("/events")

	// The confirm page first.
	w := app.get("/logout")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Do you want to sign out?")

	// Cancelling keeps the session.
	w = app.post("/logout", nil)
	require.Equal(t, "/events", w.Header().Get("Location"))
	require.Equal(t, http.StatusOK, app.get("/events").Code)

	// Accepting clears it, in memory and in the persisted copy.
	w = app.post("/logout", url.Values{"confirm": {"yes"}})
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = app.get("/events")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	_, ok, err := app.store.Get(store.SessionKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionSurvivesRestart(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")

	// A second manager over the same persisted state picks the session up.
	restored := auth.NewManager(nil, app.store)
	current := restored.Current()
	require.NotNil(t, current)
	require.Equal(t, "admin", current.Username)
}

func TestUnknownPathRendersBlankPage(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")
	app.get("/events")

	w := app.get("/no-such-page")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Administrator")
}

func TestSignedInUserSkipsLoginPage(t *testing.T) {
	app := newWebApp(t)
	app.login(t, "admin", "admin123")

	w := app.get("/login")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/events", w.Header().Get("Location"))
}
