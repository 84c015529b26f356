package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "boardstore/internal/platform/net"
	"boardstore/internal/platform/net/middleware"
)

func TestCorrelationMintsID(t *testing.T) {
	var seen string
	h := middleware.Correlation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.CorrelationID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if seen == "" {
		t.Fatal("correlation id not set on context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("response header %q != context id %q", got, seen)
	}
}

func TestCorrelationPropagatesInboundID(t *testing.T) {
	var seen string
	h := middleware.Correlation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.CorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "upstream-id-42" {
		t.Fatalf("inbound id not propagated, got %q", seen)
	}
}

func TestRecoverJSONTurnsPanicInto500(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("panic response must be JSON: %v", err)
	}
	if body["status_code"] != float64(http.StatusInternalServerError) {
		t.Fatalf("bad body: %v", body)
	}
	// panic payload must not leak into the response body
	if msg, _ := body["error"].(string); msg == "boom" {
		t.Fatalf("panic value leaked: %q", msg)
	}
}

func TestAccessLogCapturesStatus(t *testing.T) {
	h := middleware.AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status not passed through, got %d", rec.Code)
	}
}

func TestCORSPreflightIsNoContent(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products/import", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("preflight lost the allow-origin header")
	}
}

func TestCORSPassesPlainRequests(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("plain request rewritten, got %d", rec.Code)
	}
}

func TestDefaultsStackServes(t *testing.T) {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for i := len(middleware.Defaults()) - 1; i >= 0; i-- {
		h = middleware.Defaults()[i](h)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("defaults stack broke the request, got %d", rec.Code)
	}
}
