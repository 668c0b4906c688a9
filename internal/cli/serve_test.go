package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/pipeline"
	"github.com/coursepath/coursepath/pkg/progress"
)

func testServer(t *testing.T) *server {
	t.Helper()

	courses := []catalog.Course{
		{ID: "a", Code: "CSE 114", Title: "Intro Programming", Active: true},
		{ID: "b", Code: "CSE 214", Title: "Data Structures", Active: true,
			Prerequisites: catalog.CourseReq("a")},
	}
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := catalog.WriteCatalogFile(courses, path); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	return &server{
		cli:         New(io.Discard, LogInfo),
		runner:      pipeline.NewRunner(nil, nil, nil),
		store:       progress.NewMemoryStore(),
		catalogPath: path,
	}
}

func testRouter(srv *server) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", srv.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/courses", srv.handleCourses)
		r.Post("/layout", srv.handleLayout)
		r.Route("/records", func(r chi.Router) {
			r.Post("/", srv.handleCreateRecord)
			r.Get("/{id}", srv.handleGetRecord)
			r.Put("/{id}", srv.handlePutRecord)
			r.Delete("/{id}", srv.handleDeleteRecord)
			r.Get("/{id}/availability", srv.handleAvailability)
		})
	})
	return r
}

func TestServerHealth(t *testing.T) {
	router := testRouter(testServer(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestServerCourses(t *testing.T) {
	router := testRouter(testServer(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/courses", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var courses []catalog.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("len(courses) = %d, want 2", len(courses))
	}
}

func TestServerLayout(t *testing.T) {
	router := testRouter(testServer(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(`{"viz_type":"grid"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Nodes) != 2 {
		t.Errorf("len(nodes) = %d, want 2", len(body.Nodes))
	}
}

func TestServerLayoutBadVizType(t *testing.T) {
	router := testRouter(testServer(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(`{"viz_type":"tower"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServerRecordLifecycle(t *testing.T) {
	router := testRouter(testServer(t))

	// Create
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/records/", strings.NewReader(`{"standing":"sophomore"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created progress.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has no ID")
	}

	// Update
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/records/"+created.ID,
		strings.NewReader(`{"completedCourses":["a"]}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// Get
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/records/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var fetched progress.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode fetched: %v", err)
	}
	if !fetched.HasCompleted("a") {
		t.Error("fetched record missing completed course a")
	}

	// Availability
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/records/"+created.ID+"/availability", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("availability status = %d, want 200", rec.Code)
	}
	var states map[string]progress.State
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatalf("decode states: %v", err)
	}
	if states["a"] != progress.Completed {
		t.Errorf("state[a] = %v, want Completed", states["a"])
	}
	if states["b"] != progress.Available {
		t.Errorf("state[b] = %v, want Available", states["b"])
	}

	// Delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/records/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/records/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestServerRecordNotFound(t *testing.T) {
	router := testRouter(testServer(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/records/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
