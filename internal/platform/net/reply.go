package net

import (
	"net/http"

	perr "boardstore/internal/platform/errors"
)

// Wire is a common envelope used by transports
type Wire struct {
	StatusCode    int            `json:"status_code"`
	Status        string         `json:"status"`
	Code          perr.ErrorCode `json:"code,omitempty"`
	Error         string         `json:"error,omitempty"`
	Field         string         `json:"field,omitempty"`
	RetryAfter    int64          `json:"retry_after_seconds,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Data          any            `json:"data,omitempty"`
}

// OK builds a 200 envelope
func OK(data any, corrID string) (int, Wire) {
	return http.StatusOK, Wire{
		StatusCode:    http.StatusOK,
		Status:        http.StatusText(http.StatusOK),
		CorrelationID: corrID,
		Data:          data,
	}
}

// Created builds a 201 envelope
func Created(data any, corrID string) (int, Wire) {
	return http.StatusCreated, Wire{
		StatusCode:    http.StatusCreated,
		Status:        http.StatusText(http.StatusCreated),
		CorrelationID: corrID,
		Data:          data,
	}
}

// Error builds an error envelope
func Error(err error, corrID string) (int, Wire) {
	if err == nil {
		return OK(nil, corrID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode:    status,
		Status:        http.StatusText(status),
		Code:          w.Code,
		Error:         w.Message,
		Field:         w.Field,
		RetryAfter:    w.RetryAfter,
		CorrelationID: corrID,
	}
}
