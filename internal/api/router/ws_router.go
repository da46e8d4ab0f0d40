package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
)

// WSRoutes registers the room join endpoints. Auth happens inside the
// handshake handlers because the token arrives as a query parameter, not a
// header the middleware could read.
func WSRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		wsEndpoints := endpoints.NewWSEndpoints(s.Database(), s.Handler(), prefix)

		mux.HandleFunc(prefix+"/dashboard", s.MakeHTTPHandleFunc(wsEndpoints.DashboardSocket))
		mux.HandleFunc(prefix+"/tickets/", s.MakeHTTPHandleFunc(wsEndpoints.TicketSocket))
		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(wsEndpoints.Rooms))
	}
}
