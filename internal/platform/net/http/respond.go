// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	perr "boardstore/internal/platform/errors"
	bnet "boardstore/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode    int            `json:"status_code"`
	Status        string         `json:"status"`
	Code          perr.ErrorCode `json:"code,omitempty"`
	Error         string         `json:"error,omitempty"`
	Field         string         `json:"field,omitempty"`
	RetryAfter    int64          `json:"retry_after_seconds,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Data          any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes only a status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

//
// Effectful helpers (Respond*) for classic handlers
//

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	corrID := bnet.CorrelationID(r.Context())
	JSON(w, stdhttp.StatusOK, Envelope{
		StatusCode:    stdhttp.StatusOK,
		Status:        stdhttp.StatusText(stdhttp.StatusOK),
		CorrelationID: corrID,
		Data:          data,
	})
}

// RespondCreated writes a 201 envelope with data
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	corrID := bnet.CorrelationID(r.Context())
	JSON(w, stdhttp.StatusCreated, Envelope{
		StatusCode:    stdhttp.StatusCreated,
		Status:        stdhttp.StatusText(stdhttp.StatusCreated),
		CorrelationID: corrID,
		Data:          data,
	})
}

// RespondNoContent writes a 204 with no body
func RespondNoContent(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.WriteHeader(stdhttp.StatusNoContent)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	corrID := bnet.CorrelationID(r.Context())
	writeError(w, corrID, err)
}

func writeError(w stdhttp.ResponseWriter, corrID string, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	if wr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(wr.RetryAfter, 10))
	}
	JSON(w, status, Envelope{
		StatusCode:    status,
		Status:        stdhttp.StatusText(status),
		Code:          wr.Code,
		Error:         wr.Message,
		Field:         wr.Field,
		RetryAfter:    wr.RetryAfter,
		CorrelationID: corrID,
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	corrID := bnet.CorrelationID(r.Context())

	// If Body is an error, derive status from error *before* building the envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		writeError(w, corrID, err)
		return
	}

	// success path
	JSON(w, status, Envelope{
		StatusCode:    status,
		Status:        stdhttp.StatusText(status),
		CorrelationID: corrID,
		Data:          resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data is an alias for OK
func Data(v any) Response { return OK(v) }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// RetryIn returns an error response that also carries a Retry-After hint
func RetryIn(err error, after time.Duration) Response {
	return Response{Body: perr.WithRetryAfter(err, after)}
}

// MethodNotAllowed writes a 405 envelope and sets the Allow header
func MethodNotAllowed(allow ...string) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		corrID := bnet.CorrelationID(r.Context())
		status := stdhttp.StatusMethodNotAllowed
		JSON(w, status, Envelope{
			StatusCode:    status,
			Status:        stdhttp.StatusText(status),
			Code:          perr.ErrorCodeInvalidParameter,
			Error:         "method not allowed",
			CorrelationID: corrID,
		})
	}
}
