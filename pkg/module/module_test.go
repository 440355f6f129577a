package module_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/iris/pkg/module"
)

func mustNew(t *testing.T, prefix string, h http.Handler) *module.Module {
	t.Helper()
	m, err := module.New(prefix, h)
	if err != nil {
		t.Fatalf("New(%q) error: %v", prefix, err)
	}
	return m
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"api", "/api", false},
		{"docs", "/docs", false},
		{"empty", "", true},
		{"no leading slash", "api", true},
		{"nested path", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := module.New(tt.prefix, http.NewServeMux())
			if tt.wantErr {
				if !errors.Is(err, module.ErrInvalidPrefix) {
					t.Errorf("New(%q) error = %v, want ErrInvalidPrefix", tt.prefix, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.prefix, err)
			}
			if m.Prefix() != tt.prefix {
				t.Errorf("Prefix() = %s, want %s", m.Prefix(), tt.prefix)
			}
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	var got string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Path
	})

	m := mustNew(t, "/api", mux)

	tests := []struct {
		path string
		want string
	}{
		{"/api/samples", "/samples"},
		{"/api/samples/123/repr", "/samples/123/repr"},
		{"/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			m.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("inner path = %s, want %s", got, tt.want)
			}
			if req.URL.Path != tt.path {
				t.Errorf("original request path mutated to %s", req.URL.Path)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {})

	m := mustNew(t, "/api", mux)

	calls := 0
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			next.ServeHTTP(w, r)
		})
	})

	for range 2 {
		m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))
	}

	if calls != 2 {
		t.Errorf("middleware calls = %d, want 2", calls)
	}
}

func newRouter(t *testing.T) *module.Router {
	t.Helper()

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /samples", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("samples"))
	})

	docsMux := http.NewServeMux()
	docsMux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("docs"))
	})

	router := module.NewRouter()
	router.Mount(mustNew(t, "/api", apiMux))
	router.Mount(mustNew(t, "/docs", docsMux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return router
}

func TestRouterDispatch(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"module route", "/api/samples", http.StatusOK, "samples"},
		{"module root", "/docs", http.StatusOK, "docs"},
		{"trailing slash", "/api/samples/", http.StatusOK, "samples"},
		{"native route", "/healthz", http.StatusOK, "ok"},
		{"prefix lookalike", "/apis", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
