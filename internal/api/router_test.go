package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
	"github.com/lateshow/lateshow-api/internal/core/service"
	"github.com/lateshow/lateshow-api/internal/infrastructure/http/handlers"
	"github.com/lateshow/lateshow-api/internal/infrastructure/queue"
)

// ---------------------------------------------------------------------------
// In-memory repositories backing real services
// ---------------------------------------------------------------------------

type memUsers struct {
	byName map[string]domain.User
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := m.byName[u.Username]; ok {
		return nil, domain.ErrUserExists
	}
	created := *u
	created.ID = int64(len(m.byName) + 1)
	m.byName[u.Username] = created
	return &created, nil
}

type memCatalog struct {
	guests      map[int64]domain.Guest
	episodes    map[int64]domain.Episode
	appearances map[int64]domain.Appearance
	nextID      int64
}

func (m *memCatalog) List(context.Context) ([]domain.Guest, error) {
	out := []domain.Guest{}
	for id := int64(1); id <= int64(len(m.guests)); id++ {
		out = append(out, m.guests[id])
	}
	return out, nil
}

func (m *memCatalog) FindByID(_ context.Context, id int64) (*domain.Guest, error) {
	g, ok := m.guests[id]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	return &g, nil
}

type memEpisodes struct{ *memCatalog }

func (m memEpisodes) List(context.Context) ([]domain.Episode, error) {
	out := []domain.Episode{}
	for _, e := range m.episodes {
		out = append(out, e)
	}
	return out, nil
}

func (m memEpisodes) FindByID(_ context.Context, id int64) (*domain.Episode, error) {
	e, ok := m.episodes[id]
	if !ok {
		return nil, domain.ErrEpisodeNotFound
	}
	return &e, nil
}

func (m memEpisodes) Delete(_ context.Context, id int64) error {
	if _, ok := m.episodes[id]; !ok {
		return domain.ErrEpisodeNotFound
	}
	for aid, a := range m.appearances {
		if a.EpisodeID == id {
			delete(m.appearances, aid)
		}
	}
	delete(m.episodes, id)
	return nil
}

type memAppearances struct{ *memCatalog }

func (m memAppearances) Create(_ context.Context, a *domain.Appearance) error {
	m.nextID++
	a.ID = m.nextID
	m.appearances[a.ID] = *a
	return nil
}

func (m memAppearances) FindByID(_ context.Context, id int64) (*domain.Appearance, error) {
	a, ok := m.appearances[id]
	if !ok {
		return nil, domain.ErrAppearanceNotFound
	}
	return &a, nil
}

func (m memAppearances) ListByEpisode(_ context.Context, episodeID int64) ([]domain.Appearance, error) {
	var out []domain.Appearance
	for id := int64(1); id <= m.nextID; id++ {
		if a, ok := m.appearances[id]; ok && a.EpisodeID == episodeID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memKeys map[string]int64

func (m memKeys) Lookup(_ context.Context, key string) (int64, bool, error) {
	id, ok := m[key]
	return id, ok, nil
}

func (m memKeys) Remember(_ context.Context, key string, id int64) error {
	m[key] = id
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type testServer struct {
	t       *testing.T
	handler http.Handler
	catalog *memCatalog
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	recorder := queue.Discard{}

	catalog := &memCatalog{
		guests: map[int64]domain.Guest{
			1: {ID: 1, Name: "Jennifer Lawrence", Occupation: "Actress"},
			2: {ID: 2, Name: "Elon Musk", Occupation: "Entrepreneur"},
		},
		episodes: map[int64]domain.Episode{
			1: {ID: 1, Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), Number: 101},
		},
		appearances: map[int64]domain.Appearance{},
	}
	episodes := memEpisodes{catalog}
	appearances := memAppearances{catalog}

	auth := service.NewAuthService(&memUsers{byName: map[string]domain.User{}}, recorder, service.AuthConfig{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
	}, log)
	if _, err := auth.Register(context.Background(), "admin", "password123"); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	e := NewRouter(Dependencies{
		Auth:        auth,
		Guests:      service.NewGuestService(catalog),
		Episodes:    service.NewEpisodeService(episodes, appearances, recorder, log),
		Appearances: service.NewAppearanceService(appearances, catalog, episodes, memKeys{}, recorder, log),
		ReadinessChecks: map[string]handlers.Check{
			"postgres": func(context.Context) error { return nil },
		},
		Registry: prometheus.NewRegistry(),
		Log:      log,
	})
	return &testServer{t: t, handler: e, catalog: catalog}
}

func (s *testServer) do(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/login", `{"username":"admin","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.AccessToken == "" {
		s.t.Fatalf("login: no token in %s", rec.Body.String())
	}
	return resp.AccessToken
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestRouter_LoginFailures(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/login", `{"username":"nobody","password":"x"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestRouter_Register(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodPost, "/register", `{"username":"carol","password":"secret1"}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/register", `{"username":"carol","password":"secret1"}`, ""); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/register", `{"username":"dave","password":"123"}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: expected 400, got %d", rec.Code)
	}
}

func TestRouter_PublicReads(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodGet, "/guests", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("guests: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/episodes", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("episodes: expected 200, got %d", rec.Code)
	}

	rec := s.do(http.MethodGet, "/episodes/999", "", "")
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Episode not found" {
		t.Fatalf("missing episode: got %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodGet, "/episodes/abc", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", rec.Code)
	}
}

func TestRouter_WritesRequireToken(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodPost, "/appearances", `{"rating":5,"guest_id":1,"episode_id":1}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("create without token: expected 401, got %d", rec.Code)
	}
	if rec := s.do(http.MethodDelete, "/episodes/1", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("delete with bad token: expected 401, got %d", rec.Code)
	}
	if len(s.catalog.episodes) != 1 {
		t.Fatalf("episode must survive unauthenticated delete")
	}
}

func TestRouter_AppearanceLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	rec := s.do(http.MethodPost, "/appearances", `{"rating":5,"guest_id":1,"episode_id":1}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/appearances", `{"rating":5,"episode_id":1}`, token)
	if rec.Code != http.StatusBadRequest || errorMessage(t, rec) != "Rating, guest_id, and episode_id are required" {
		t.Fatalf("missing field: got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/appearances", `{"rating":6,"guest_id":1,"episode_id":1}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rating out of range: expected 400, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/appearances", `{"rating":5,"guest_id":99,"episode_id":99}`, token)
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Guest not found" {
		t.Fatalf("missing guest: got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/appearances", `{"rating":5,"guest_id":1,"episode_id":99}`, token)
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Episode not found" {
		t.Fatalf("missing episode: got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/episodes/1", "", "")
	var detail struct {
		Date        string `json:"date"`
		Appearances []struct {
			GuestID int64 `json:"guest_id"`
		} `json:"appearances"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode episode: %v", err)
	}
	if detail.Date != "2024-01-15" || len(detail.Appearances) != 1 {
		t.Fatalf("unexpected episode detail: %s", rec.Body.String())
	}
}

func TestRouter_UnknownIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	creates := []struct{ body, msg string }{
		{`{"rating":5,"guest_id":0,"episode_id":1}`, "Guest not found"},
		{`{"rating":5,"guest_id":-3,"episode_id":1}`, "Guest not found"},
		{`{"rating":5,"guest_id":1,"episode_id":0}`, "Episode not found"},
		{`{"rating":9,"guest_id":999,"episode_id":1}`, "Guest not found"},
	}
	for _, tc := range creates {
		rec := s.do(http.MethodPost, "/appearances", tc.body, token)
		if rec.Code != http.StatusNotFound || errorMessage(t, rec) != tc.msg {
			t.Fatalf("%s: expected 404 %q, got %d %s", tc.body, tc.msg, rec.Code, rec.Body.String())
		}
	}
	if len(s.catalog.appearances) != 0 {
		t.Fatalf("no appearance should be stored, got %d", len(s.catalog.appearances))
	}

	if rec := s.do(http.MethodGet, "/episodes/0", "", ""); rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Episode not found" {
		t.Fatalf("get episode 0: got %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodDelete, "/episodes/0", "", token); rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Episode not found" {
		t.Fatalf("delete episode 0: got %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodGet, "/appearances/-1", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get appearance -1: expected 404, got %d", rec.Code)
	}
}

func TestRouter_IdempotentCreate(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	body := `{"rating":4,"guest_id":2,"episode_id":1}`

	first := s.do(http.MethodPost, "/appearances", body, token, "Idempotency-Key", "k-1")
	second := s.do(http.MethodPost, "/appearances", body, token, "Idempotency-Key", "k-1")

	if first.Code != http.StatusCreated || second.Code != http.StatusOK {
		t.Fatalf("expected 201 then 200, got %d then %d", first.Code, second.Code)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replay header missing")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body differs: %s vs %s", first.Body.String(), second.Body.String())
	}
	if len(s.catalog.appearances) != 1 {
		t.Fatalf("expected one appearance, got %d", len(s.catalog.appearances))
	}
}

func TestRouter_DeleteEpisodeCascades(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	s.do(http.MethodPost, "/appearances", `{"rating":3,"guest_id":1,"episode_id":1}`, token)

	rec := s.do(http.MethodDelete, "/episodes/1", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"message":"Episode deleted successfully"}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(s.catalog.appearances) != 0 {
		t.Fatalf("appearances of deleted episode remain")
	}

	if rec := s.do(http.MethodDelete, "/episodes/1", "", token); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	s.do(http.MethodGet, "/guests", "", "")
	rec := s.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "lateshow_http_requests_total") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}

var _ ports.IdempotencyStore = memKeys{}
