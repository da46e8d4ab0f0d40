package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

// IngestRoutes registers the automation-facing inbound API. There is no
// session auth on this surface; one shared per-IP limiter covers both
// routes so a runaway sender cannot flood either.
func IngestRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		ingestEndpoints := endpoints.NewIngestEndpoints(s.Database())
		limiter := middleware.NewRateLimiter(5, 10)

		mux.HandleFunc(prefix+"/tickets", s.MakeHTTPHandleFunc(ingestEndpoints.InboundTickets, limiter.Middleware()))
		mux.HandleFunc(prefix+"/replies", s.MakeHTTPHandleFunc(ingestEndpoints.InboundReplies, limiter.Middleware()))
	}
}
