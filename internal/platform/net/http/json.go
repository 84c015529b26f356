package http

import (
	"net/http"

	"boardstore/internal/platform/net/http/bind"
)

// JSONHandlerResponse adapts a JSON handler that controls its own Response,
// for endpoints that pick between 200 and 201 (or attach headers)
func JSONHandlerResponse[T any](fn func(*http.Request, T) Response) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return fn(r, in)
	})
}
