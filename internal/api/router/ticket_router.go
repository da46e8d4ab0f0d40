package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
	webhooksvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/webhook"
)

// TicketRoutes registers the staff ticket API. The exact patterns for
// /tickets and /tickets/search take precedence over the /tickets/ subtree,
// which the endpoint routes by path segments itself.
func TicketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		ticketEndpoints := endpoints.NewTicketEndpoints(s.Database(), webhooksvc.Default(), prefix)

		mux.HandleFunc(prefix+"/tickets", s.MakeHTTPHandleFunc(ticketEndpoints.Tickets, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/tickets/search", s.MakeHTTPHandleFunc(ticketEndpoints.TicketSearch, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/tickets/", s.MakeHTTPHandleFunc(ticketEndpoints.TicketTree, middleware.ValidateStaffJWT))
	}
}
