// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithCorrelation annotates context with the correlation id for this request chain
func WithCorrelation(ctx context.Context, corrID string) context.Context {
	if corrID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, corrID)
	}
	return ctx
}

// CorrelationID returns the correlation id on the context if present
func CorrelationID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
