package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

// TemplateRoutes registers compose templates and the AI draft endpoints.
// The display and health probes stay open; they carry no ticket data and
// the automation platform polls them without a session.
func TemplateRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		templateEndpoints := endpoints.NewTemplateEndpoints(s.Database(), prefix)

		mux.HandleFunc(prefix+"/email-template/", s.MakeHTTPHandleFunc(templateEndpoints.EmailTemplate, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/ai/get-response/", s.MakeHTTPHandleFunc(templateEndpoints.AIResponse, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/ai/display-response", s.MakeHTTPHandleFunc(templateEndpoints.AIDisplayResponse))
		mux.HandleFunc(prefix+"/ai/health", s.MakeHTTPHandleFunc(templateEndpoints.AIHealth))
	}
}
