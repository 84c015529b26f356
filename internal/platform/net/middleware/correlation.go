package middleware

import (
	"net/http"

	"boardstore/internal/platform/logger"
	pnet "boardstore/internal/platform/net"

	"github.com/google/uuid"
)

// correlationHeader carries the caller-supplied correlation id, if any
const correlationHeader = "X-Request-ID"

// Correlation assigns a correlation id to every request.
// An inbound X-Request-ID is propagated, otherwise a fresh uuid is minted.
// The id is stashed on context, attached to the request logger,
// and mirrored back on the response header.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get(correlationHeader)
		if corrID == "" {
			corrID = uuid.NewString()
		}

		ctx := pnet.WithCorrelation(r.Context(), corrID)
		ctx = logger.WithImport(ctx, corrID, "")

		w.Header().Set(correlationHeader, corrID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
