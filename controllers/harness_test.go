package controllers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"barbershop-web/cache"
	"barbershop-web/controllers"
	"barbershop-web/routes"
	"barbershop-web/services"
	"barbershop-web/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	method string
	path   string
	role   string
}

// fakeBackend answers canned responses keyed by "METHOD /path" and records
// every request it receives.
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]func(w http.ResponseWriter, r *http.Request)
	calls     []backendCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]func(w http.ResponseWriter, r *http.Request){}}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, backendCall{r.Method, r.URL.Path, r.Header.Get(services.RoleHeader)})
	h, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (f *fakeBackend) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (f *fakeBackend) called(method, path string) bool {
	return f.count(method, path) > 0
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			n++
		}
	}
	return n
}

func (f *fakeBackend) roleOf(method, path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			return c.role
		}
	}
	return ""
}

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	t       *testing.T
	backend *fakeBackend
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, routes.Options{LoginRatePerMinute: 1000})
}

func newHarnessWith(t *testing.T, opts routes.Options) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(session.NewMemoryStore(), session.Options{
		CookieName: "barbershop_session",
		TTL:        time.Hour,
		Secret:     "test-secret",
	}, log)

	deps := controllers.Deps{
		API:      services.NewAPIClient(srv.URL, 5*time.Second, nil),
		Sessions: sessions,
		Weather:  services.NewWeatherService(srv.URL, "test-key", "Amman", 10*time.Minute, cache.NewMemoryCache(), log),
		Log:      log,
	}
	opts.Now = func() time.Time { return testNow }
	router := routes.SetupRouter(deps, opts)

	return &harness{t: t, backend: backend, router: router, cookies: map[string]*http.Cookie{}}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c
	}
	return w
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

// follow asserts w is a See Other redirect and loads its target the way a
// browser would.
func (h *harness) follow(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	h.t.Helper()
	require.Equal(h.t, http.StatusSeeOther, w.Code)
	return h.get(w.Header().Get("Location"))
}

func (h *harness) loginAs(role string) {
	h.t.Helper()
	body := `{"user_id":5,"role":"user","email":"sam@example.com","full_name":"Sam Customer"}`
	if role == "admin" {
		body = `{"user_id":1,"role":"admin","email":"owner@example.com","full_name":"Shop Owner"}`
	}
	h.backend.on(http.MethodPost, "/api/auth/login", http.StatusOK, body)

	w := h.post("/login", url.Values{"email": {"sam@example.com"}, "password": {"secret1"}})
	require.Equal(h.t, http.StatusFound, w.Code)
}
