package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		authEndpoints := endpoints.NewAuthEndpoints(s.Database())
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
		mux.HandleFunc(prefix+"/auth/refresh", s.MakeHTTPHandleFunc(authEndpoints.Refresh))
		mux.HandleFunc(prefix+"/auth/me", s.MakeHTTPHandleFunc(authEndpoints.Me, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/auth/members", s.MakeHTTPHandleFunc(authEndpoints.Members, middleware.ValidateAdminJWT))
	}
}
