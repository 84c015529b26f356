package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/logger"
	pnet "boardstore/internal/platform/net"
)

type panicWire struct {
	StatusCode    int    `json:"status_code"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// RecoverJSON converts panics into a JSON 500 and logs stack with correlation id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				corrID := pnet.CorrelationID(r.Context())

				// format stack like chi recover
				raw := debug.Stack()
				lines := strings.Split(string(raw), "\n")
				stack := strings.Join(lines, "\n\t")

				log := logger.C(r.Context())
				if log == nil {
					log = logger.Named("http")
				}
				log.Error().
					Str("correlation_id", corrID).
					Interface("panic", v).
					Msgf("panic recovered\n%s", stack)

				// mirror id in response header
				if corrID != "" {
					w.Header().Set("X-Request-ID", corrID)
				}

				body := panicWire{
					StatusCode:    stdhttp.StatusInternalServerError,
					Status:        stdhttp.StatusText(stdhttp.StatusInternalServerError),
					Error:         perr.Root(perr.PanicErrf("panic recovered")).Error(),
					CorrelationID: corrID,
				}

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(stdhttp.StatusInternalServerError)
				_ = stdjson.NewEncoder(w).Encode(body)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
