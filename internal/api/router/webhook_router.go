package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
	webhooksvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/webhook"
)

func WebhookRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		webhookEndpoints := endpoints.NewWebhookEndpoints(s.Database(), webhooksvc.Default(), prefix)

		mux.HandleFunc(prefix+"/webhook/tech-director/", s.MakeHTTPHandleFunc(webhookEndpoints.TechDirectorRefer, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/webhook/status/", s.MakeHTTPHandleFunc(webhookEndpoints.Status, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/webhook/health", s.MakeHTTPHandleFunc(webhookEndpoints.Health, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/webhook/cleanup", s.MakeHTTPHandleFunc(webhookEndpoints.Cleanup, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/webhook/test", s.MakeHTTPHandleFunc(webhookEndpoints.Test, middleware.ValidateStaffJWT))
	}
}
