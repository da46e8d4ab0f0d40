package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

func DashboardRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		dashboardEndpoints := endpoints.NewDashboardEndpoints(s.Database())

		mux.HandleFunc(prefix+"/stats", s.MakeHTTPHandleFunc(dashboardEndpoints.Stats, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/dashboard", s.MakeHTTPHandleFunc(dashboardEndpoints.Dashboard, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/status-page", s.MakeHTTPHandleFunc(dashboardEndpoints.StatusPage, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/tickets/recent", s.MakeHTTPHandleFunc(dashboardEndpoints.RecentTickets, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/tech-director/dashboard", s.MakeHTTPHandleFunc(dashboardEndpoints.TechDirectorDashboard, middleware.ValidateTechDirectorJWT))
	}
}
