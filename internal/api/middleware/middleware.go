package middleware

import "net/http"

type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps f so that the first middleware in the list sees the request
// first.
func Chain(f http.HandlerFunc, middlewares ...Middleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}
