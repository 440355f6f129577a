package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/iris/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/samples",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: respond("list")},
			{Method: "GET", Pattern: "/{id}", Handler: respond("find")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/repr", Handler: respond("repr")},
				},
			},
		},
	}
}

func TestGroupAll(t *testing.T) {
	var got []string
	for pattern := range testGroup().All() {
		got = append(got, pattern)
	}

	want := []string{"GET /samples", "GET /samples/{id}", "GET /samples/{id}/repr"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupAllStopsEarly(t *testing.T) {
	n := 0
	for range testGroup().All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterations = %d, want 1", n)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, testGroup(), routes.Group{
		Prefix: "/datasets",
		Routes: []routes.Route{{Method: "POST", Pattern: "", Handler: respond("upload")}},
	})

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"GET", "/samples", http.StatusOK, "list"},
		{"GET", "/samples/abc", http.StatusOK, "find"},
		{"GET", "/samples/abc/repr", http.StatusOK, "repr"},
		{"POST", "/datasets", http.StatusOK, "upload"},
		{"DELETE", "/samples/abc", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
