package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		if _, err := w.Write([]byte("body")); err != nil {
			t.Errorf("write: %v", err)
		}
	}))

	r := httptest.NewRequest("GET", "/api/listings", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
	if w.Body.String() != "body" {
		t.Errorf("body = %q, want %q", w.Body.String(), "body")
	}
}

func TestRequestLoggerSkipsStreamPaths(t *testing.T) {
	// Stream paths bypass the status-capturing wrapper, so the handler
	// must still receive the original writer (which supports flushing).
	for _, path := range []string{"/health", "/api/stream/listings", "/ws/listings"} {
		called := false
		handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if _, ok := w.(http.Flusher); !ok {
				t.Errorf("%s: writer lost Flusher support", path)
			}
		}))

		r := httptest.NewRequest("GET", path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), r)

		if !called {
			t.Errorf("%s: handler not called", path)
		}
	}
}
