package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "boardstore/internal/platform/errors"
	pnet "boardstore/internal/platform/net"
	phttp "boardstore/internal/platform/net/http"
)

func doHandle(t *testing.T, h func(*stdhttp.Request) phttp.Response) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/x", nil)
	req = req.WithContext(pnet.WithCorrelation(req.Context(), "test-corr"))
	phttp.Handle(h)(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestHandleOKEnvelope(t *testing.T) {
	rec, env := doHandle(t, func(r *stdhttp.Request) phttp.Response {
		return phttp.OK(map[string]string{"hello": "world"})
	})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if env.CorrelationID != "test-corr" {
		t.Fatalf("correlation id missing from envelope: %+v", env)
	}
	if env.Error != "" || env.Code != 0 {
		t.Fatalf("success envelope must not carry error fields: %+v", env)
	}
}

func TestHandleCreatedEnvelope(t *testing.T) {
	rec, env := doHandle(t, func(r *stdhttp.Request) phttp.Response {
		return phttp.Created(map[string]any{"id": 1})
	})
	if rec.Code != stdhttp.StatusCreated || env.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("want 201, got %d/%d", rec.Code, env.StatusCode)
	}
}

func TestHandleErrorDerivesStatusFromCode(t *testing.T) {
	rec, env := doHandle(t, func(r *stdhttp.Request) phttp.Response {
		return phttp.Error(perr.MarketplaceNotFoundf("unknown marketplace %q", "XX"))
	})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if env.Code != perr.ErrorCodeMarketplaceNotFound {
		t.Fatalf("want marketplace code, got %d", env.Code)
	}
}

func TestThrottledSetsRetryAfterHeaderAndBody(t *testing.T) {
	err := perr.WithRetryAfter(perr.Throttledf("rate limited"), 3*time.Second)
	rec, env := doHandle(t, func(r *stdhttp.Request) phttp.Response {
		return phttp.Error(err)
	})
	if rec.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "3" {
		t.Fatalf("want Retry-After: 3, got %q", got)
	}
	if env.RetryAfter != 3 {
		t.Fatalf("want retry_after_seconds 3 in body, got %d", env.RetryAfter)
	}
}

func TestCircuitOpenSetsRetryAfter(t *testing.T) {
	rec, env := doHandle(t, func(r *stdhttp.Request) phttp.Response {
		return phttp.Error(perr.CircuitOpenf(30*time.Second, "upstream unavailable"))
	})
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("want Retry-After: 30, got %q", got)
	}
	if env.Code != perr.ErrorCodeCircuitOpen {
		t.Fatalf("want circuit open code, got %d", env.Code)
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/products/import", nil)
	phttp.MethodNotAllowed("POST", "OPTIONS")(rec, req)

	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "POST, OPTIONS" {
		t.Fatalf("want Allow header, got %q", got)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("body status mismatch: %+v", env)
	}
}

func TestNoContentHasEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodDelete, "/x", nil)
	phttp.Handle(func(r *stdhttp.Request) phttp.Response { return phttp.NoContent() })(rec, req)
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("204 must have empty body, got %q", rec.Body.String())
	}
}
