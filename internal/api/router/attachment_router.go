package router

import (
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/endpoints"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
)

func AttachmentRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		attachmentEndpoints := endpoints.NewAttachmentEndpoints(s.Database(), prefix)

		mux.HandleFunc(prefix+"/attachments/ticket/", s.MakeHTTPHandleFunc(attachmentEndpoints.TicketAttachments, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/attachments/reply/", s.MakeHTTPHandleFunc(attachmentEndpoints.ReplyAttachments, middleware.ValidateStaffJWT))
	}
}
