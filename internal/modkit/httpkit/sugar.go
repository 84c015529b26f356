package httpkit

import (
	"net/http"
)

// PostJSONResponse mounts a POST handler that builds its own Response
func PostJSONResponse[T any](r Router, path string, h func(*http.Request, T) Response) {
	r.Post(path, JSONResponse(h))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
