package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

func DocumentRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		documentEndpoints := endpoints.NewDocumentEndpoints(s.Database())

		mux.HandleFunc(prefix+"/common-documents", s.MakeHTTPHandleFunc(documentEndpoints.CommonDocuments, middleware.ValidateStaffJWT))
	}
}
