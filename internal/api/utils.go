package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
)

type apiFunc func(http.ResponseWriter, *http.Request) error

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func allowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if webURL := env.Get(env.WebUrl); webURL != "" {
		origins = append(origins, webURL)
	}
	return origins
}

// renderError turns a handler error into the JSON failure body. HTTPError
// carries its own status and safe message; anything else becomes a plain 500
// so internals never leak to the client.
func renderError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.ErrorLog != nil {
			log.Println(httpErr.ErrorLog)
		}
		WriteJSON(w, httpErr.StatusCode, ApiError{Error: httpErr.Message})
		return
	}
	log.Printf("unhandled handler error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, ApiError{Error: "Internal server error"})
}

// MakeHTTPHandleFunc wraps an apiFunc with the server's middleware chain and
// runs it as a job on the request queue. The handler goroutine blocks on the
// job's error channel, so the queue bounds concurrent handler work without
// changing net/http semantics.
func (s *APIServer) MakeHTTPHandleFunc(f apiFunc, authMiddleware ...middleware.Middleware) http.HandlerFunc {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "OPTIONS", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "Authorization"},
		AllowCredentials: true,
	}

	queued := func(w http.ResponseWriter, r *http.Request) {
		errc := make(chan error, 1)
		s.requestQueueManager.EnqueueJob(queue.Job{
			Fn:   func() error { return f(w, r) },
			Errc: errc,
		})
		if err := <-errc; err != nil {
			renderError(w, err)
		}
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		wrapped := queued
		for _, m := range authMiddleware {
			wrapped = m(wrapped)
		}
		wrapped(w, r)
	}

	return middleware.Chain(handler, middleware.CORS(corsConfig), middleware.Logging())
}
