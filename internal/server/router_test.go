package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubHandler struct{ routes []string }

func (s stubHandler) Routes() []string { return s.routes }
func (s stubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("stub:" + r.URL.Path))
}

func TestChiRouter(t *testing.T) {
	t.Run("Handle Filters Method", func(t *testing.T) {
		router := NewChiRouter()
		router.Handle("post", "/things", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/things", nil))
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Method not allowed") {
			t.Errorf("expected JSON message, got %s", rec.Body.String())
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewChiRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Handler Registers All Routes", func(t *testing.T) {
		router := NewChiRouter()
		router.Handler(stubHandler{routes: []string{"/a", "/b"}})

		for _, path := range []string{"/a", "/b"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Body.String() != "stub:"+path {
				t.Errorf("%s: unexpected body %q", path, rec.Body.String())
			}
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewChiRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		router := NewChiRouter()
		router.Use(CORS())
		router.Handle(http.MethodOptions, "/api/login", http.NotFoundHandler())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/login", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected CORS header")
		}
	})
}
