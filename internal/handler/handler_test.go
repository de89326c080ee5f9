package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/config"
	"github.com/nthumods/mods-backend/internal/middleware"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/validator"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// ─── Fakes ─────────────────────────────────────────────────────────────

type memStore struct {
	lists  map[string][]string
	colors map[string]map[string]string
	prefs  map[string]model.Preferences
}

func newMemStore() *memStore {
	return &memStore{
		lists:  map[string][]string{},
		colors: map[string]map[string]string{},
		prefs:  map[string]model.Preferences{},
	}
}

func (m *memStore) List(_ context.Context, client, sem string) ([]string, error) {
	return m.lists[client+sem], nil
}

func (m *memStore) Colors(_ context.Context, client, sem string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.colors[client+sem] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Append(_ context.Context, client, sem, id, color string) error {
	m.lists[client+sem] = append(m.lists[client+sem], id)
	if m.colors[client+sem] == nil {
		m.colors[client+sem] = map[string]string{}
	}
	if _, ok := m.colors[client+sem][id]; !ok {
		m.colors[client+sem][id] = color
	}
	return nil
}

func (m *memStore) Remove(_ context.Context, client, sem, id string) (bool, error) {
	list := m.lists[client+sem]
	for i, v := range list {
		if v == id {
			m.lists[client+sem] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Replace(_ context.Context, client, sem string, ids []string, colors map[string]string) error {
	m.lists[client+sem] = ids
	m.colors[client+sem] = colors
	return nil
}

func (m *memStore) GetPreferences(_ context.Context, client string) (model.Preferences, bool, error) {
	p, ok := m.prefs[client]
	return p, ok, nil
}

func (m *memStore) SetPreferences(_ context.Context, client string, p model.Preferences) error {
	m.prefs[client] = p
	return nil
}

type memCatalog map[string]model.Course

func (m memCatalog) GetByRawID(_ context.Context, id string) (*model.Course, error) {
	c, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m memCatalog) ListByRawIDs(_ context.Context, ids []string) ([]model.Course, error) {
	var out []model.Course
	for _, id := range ids {
		if c, ok := m[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// stubFacets fails the facet named by fail.
type stubFacets struct{ fail string }

func (s stubFacets) ListDistinct(_ context.Context, facet string) ([]string, error) {
	if facet == s.fail {
		return nil, errors.New("view missing")
	}
	return []string{facet + "-a"}, nil
}

type noCache struct{ queued []string }

func (*noCache) Get(context.Context, string) ([]string, error) { return nil, repository.ErrNotFound }
func (*noCache) Set(context.Context, string, []string) error  { return nil }
func (n *noCache) Enqueue(_ context.Context, f string) error {
	n.queued = append(n.queued, f)
	return nil
}

type stubSearcher struct{ filters string }

func (s *stubSearcher) Search(query, filters string, page, perPage int) (*model.SearchResult, error) {
	s.filters = filters
	if query == "fail" {
		return nil, errors.New("index down")
	}
	return &model.SearchResult{
		Hits:        []model.Course{{RawID: "CS101"}},
		TotalHits:   41,
		Page:        page,
		TotalPages:  3,
		HitsPerPage: perPage,
	}, nil
}

// ─── Harness ───────────────────────────────────────────────────────────

type harness struct {
	engine   *gin.Engine
	store    *memStore
	searcher *stubSearcher
	auth     *service.AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	catalog := memCatalog{
		"CS101": {RawID: "CS101", NameZh: "程式設計", Credits: 3, Venues: []string{"DELTA104"}, Times: []string{"M3M4"}},
		"CS102": {RawID: "CS102", NameEn: "Data Structures", Credits: 3, Venues: []string{"DELTA105"}, Times: []string{"M4"}},
	}
	store := newMemStore()
	searcher := &stubSearcher{}
	log := zerolog.Nop()
	auth := service.NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})

	timetableService := service.NewTimetableService(store, catalog, "https://nthumods.com", log)
	courseService := service.NewCourseService(catalog, searcher, log)
	facetService := service.NewFacetService(stubFacets{fail: model.FacetVenues}, &noCache{}, log)

	sessionH := NewSessionHandler(auth, log)
	courseH := NewCourseHandler(courseService)
	facetH := NewFacetHandler(facetService, time.Hour)
	timetableH := NewTimetableHandler(timetableService, log)
	exportH := NewExportHandler(timetableService, CalendarSettings{
		SemesterStart: time.Date(2023, time.September, 11, 0, 0, 0, 0, time.UTC),
		Weeks:         16,
		Location:      time.FixedZone("CST", 8*3600),
	}, log)

	r := gin.New()
	r.POST("/api/v1/session", sessionH.Create)
	r.GET("/api/v1/courses/search", courseH.Search)
	r.GET("/api/v1/courses/:raw_id", courseH.Get)
	r.GET("/api/v1/departments", courseH.Departments)
	r.GET("/api/v1/facets", facetH.List)
	r.GET("/api/v1/shared", timetableH.Shared)
	r.GET("/timetable/calendar.ics", exportH.Calendar)
	r.GET("/timetable/export.xlsx", exportH.Workbook)

	client := r.Group("/api/v1", middleware.RequireClientJWT(auth))
	client.GET("/timetable/:semester", timetableH.View)
	client.DELETE("/timetable/:semester", timetableH.Clear)
	client.GET("/timetable/:semester/courses", timetableH.ListCourses)
	client.POST("/timetable/:semester/courses", timetableH.AddCourse)
	client.DELETE("/timetable/:semester/courses/:raw_id", timetableH.DeleteCourse)
	client.POST("/timetable/:semester/import", timetableH.Import)
	client.GET("/preferences", timetableH.GetPreferences)
	client.PUT("/preferences", timetableH.UpdatePreferences)

	return &harness{engine: r, store: store, searcher: searcher, auth: auth}
}

func (h *harness) do(method, path, token, body string) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) token(t *testing.T) string {
	t.Helper()
	w := h.do(http.MethodPost, "/api/v1/session", "", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("session: status %d", w.Code)
	}
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decode(t, w, &body)
	return body.Data.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Pagination *struct {
		Page       int `json:"page"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

// ─── Tests ─────────────────────────────────────────────────────────────

func TestSearch(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/courses/search?q=prog&department=CS&level=1&level=2&page=1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var env envelope
	decode(t, w, &env)
	if env.Pagination == nil || env.Pagination.TotalItems != 41 || env.Pagination.Page != 1 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
	if want := `(level:"1" OR level:"2") AND department:"CS"`; h.searcher.filters != want {
		t.Errorf("filters = %s, want %s", h.searcher.filters, want)
	}

	if w := h.do(http.MethodGet, "/api/v1/courses/search?level=12", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid level: status = %d, want 400", w.Code)
	}
	if w := h.do(http.MethodGet, "/api/v1/courses/search?q=fail", "", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("index down: status = %d, want 503", w.Code)
	}
}

func TestGetCourse(t *testing.T) {
	h := newHarness(t)

	if w := h.do(http.MethodGet, "/api/v1/courses/CS101", "", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}

	w := h.do(http.MethodGet, "/api/v1/courses/NOPE", "", "")
	var env envelope
	decode(t, w, &env)
	if w.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "COURSE_NOT_FOUND" {
		t.Errorf("status = %d, error = %+v", w.Code, env.Error)
	}
}

func TestFacetsIsolateFailures(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/facets", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data model.Facets `json:"data"`
	}
	decode(t, w, &body)
	if venues := body.Data.Lists[model.FacetVenues]; !venues.Error || len(venues.Values) != 0 {
		t.Errorf("venues = %+v", venues)
	}
	if classes := body.Data.Lists[model.FacetClasses]; classes.Error || len(classes.Values) != 1 {
		t.Errorf("classes = %+v", classes)
	}
}

func TestFacetsCacheControl(t *testing.T) {
	tests := []struct {
		name string
		fail string
		want string
	}{
		{"all loaded", "", "public, max-age=3600"},
		{"one failed", model.FacetClasses, "private, no-store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewFacetService(stubFacets{fail: tt.fail}, &noCache{}, zerolog.Nop())
			r := gin.New()
			r.GET("/api/v1/facets", NewFacetHandler(svc, time.Hour).List)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/facets", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if got := w.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimetableRequiresToken(t *testing.T) {
	h := newHarness(t)

	if w := h.do(http.MethodGet, "/api/v1/timetable/1121", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestTimetableFlow(t *testing.T) {
	h := newHarness(t)
	token := h.token(t)

	for _, id := range []string{"CS101", "CS102", "CS101"} {
		w := h.do(http.MethodPost, "/api/v1/timetable/1121/courses", token, `{"raw_id":"`+id+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("add %s: status = %d, body %s", id, w.Code, w.Body.String())
		}
	}

	w := h.do(http.MethodGet, "/api/v1/timetable/1121", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("view: status = %d", w.Code)
	}
	var view struct {
		Data service.TimetableView `json:"data"`
	}
	decode(t, w, &view)
	if view.Data.TotalCredits != 9 {
		t.Errorf("total credits = %d, want 9", view.Data.TotalCredits)
	}
	if len(view.Data.Duplicates) != 1 || view.Data.Duplicates[0] != "CS101" {
		t.Errorf("duplicates = %v", view.Data.Duplicates)
	}
	if len(view.Data.Conflicts) == 0 {
		t.Error("expected conflicts between CS101 and CS102")
	}
	if want := "https://nthumods.com/timetable?semester_1121=CS101,CS102,CS101"; view.Data.Links.Share != want {
		t.Errorf("share = %q, want %q", view.Data.Links.Share, want)
	}

	if w := h.do(http.MethodDelete, "/api/v1/timetable/1121/courses/CS101", token, ""); w.Code != http.StatusOK {
		t.Errorf("delete: status = %d", w.Code)
	}
	if w := h.do(http.MethodDelete, "/api/v1/timetable/1121/courses/EE000", token, ""); w.Code != http.StatusNotFound {
		t.Errorf("delete missing: status = %d, want 404", w.Code)
	}
	if w := h.do(http.MethodPost, "/api/v1/timetable/1121/courses", token, `{"raw_id":"EE000"}`); w.Code != http.StatusNotFound {
		t.Errorf("add unknown: status = %d, want 404", w.Code)
	}
	if w := h.do(http.MethodGet, "/api/v1/timetable/fall/courses", token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad semester: status = %d, want 400", w.Code)
	}
}

func TestImport(t *testing.T) {
	h := newHarness(t)
	token := h.token(t)

	body := `{"share_url":"https://nthumods.com/timetable?semester_1121=CS102,CS101"}`
	if w := h.do(http.MethodPost, "/api/v1/timetable/1121/import", token, body); w.Code != http.StatusOK {
		t.Fatalf("import: status = %d, body %s", w.Code, w.Body.String())
	}

	w := h.do(http.MethodGet, "/api/v1/timetable/1121/courses", token, "")
	var env struct {
		Data struct {
			CourseIDs []string `json:"course_ids"`
		} `json:"data"`
	}
	decode(t, w, &env)
	if strings.Join(env.Data.CourseIDs, ",") != "CS102,CS101" {
		t.Errorf("course ids = %v", env.Data.CourseIDs)
	}

	mismatch := `{"share_url":"https://nthumods.com/timetable?semester_1122=CS101"}`
	if w := h.do(http.MethodPost, "/api/v1/timetable/1121/import", token, mismatch); w.Code != http.StatusBadRequest {
		t.Errorf("mismatch: status = %d, want 400", w.Code)
	}
}

func TestPreferences(t *testing.T) {
	h := newHarness(t)
	token := h.token(t)

	w := h.do(http.MethodPut, "/api/v1/preferences", token, `{"vertical":false,"theme":"earthyTones"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}
	if w := h.do(http.MethodPut, "/api/v1/preferences", token, `{"theme":"neon"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown theme: status = %d, want 400", w.Code)
	}

	w = h.do(http.MethodGet, "/api/v1/preferences", token, "")
	var env struct {
		Data struct {
			Preferences model.Preferences `json:"preferences"`
		} `json:"data"`
	}
	decode(t, w, &env)
	if env.Data.Preferences.Vertical || env.Data.Preferences.Theme != "earthyTones" {
		t.Errorf("preferences = %+v", env.Data.Preferences)
	}
}

func TestSharedView(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/shared?semester_1121=CS101,GONE", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var view struct {
		Data service.TimetableView `json:"data"`
	}
	decode(t, w, &view)
	if len(view.Data.Courses) != 1 || len(view.Data.Missing) != 1 || view.Data.Missing[0] != "GONE" {
		t.Errorf("courses = %d, missing = %v", len(view.Data.Courses), view.Data.Missing)
	}

	if w := h.do(http.MethodGet, "/api/v1/shared?ids=CS101", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("no semester param: status = %d, want 400", w.Code)
	}
}

func TestExports(t *testing.T) {
	h := newHarness(t)
	q := "?" + url.Values{"semester_1121": {"CS101,CS102"}}.Encode()

	w := h.do(http.MethodGet, "/timetable/calendar.ics"+q, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ics: status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("ics content type = %q", ct)
	}
	if got := strings.Count(w.Body.String(), "BEGIN:VEVENT"); got != 2 {
		t.Errorf("events = %d, want 2", got)
	}

	w = h.do(http.MethodGet, "/timetable/export.xlsx"+q, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx: status = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "nthumods-1121.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}

	if w := h.do(http.MethodGet, "/timetable/calendar.ics", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing list: status = %d, want 400", w.Code)
	}
}
