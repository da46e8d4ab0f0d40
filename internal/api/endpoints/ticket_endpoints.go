package endpoints

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
	internaljwt "github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"
	documentsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/document"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	webhooksvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/webhook"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

type TicketEndpoints interface {
	Tickets(http.ResponseWriter, *http.Request) error
	TicketSearch(http.ResponseWriter, *http.Request) error
	TicketTree(http.ResponseWriter, *http.Request) error
}

type TicketPaths struct {
	TicketsPath  string
	TicketPrefix string
}

type ticketEndpoints struct {
	service    *ticketsvc.Service
	documents  *documentsvc.Service
	auth       *authsvc.Service
	dispatcher *webhooksvc.Dispatcher
	paths      TicketPaths
}

func NewTicketEndpoints(db *database.Database, dispatcher *webhooksvc.Dispatcher, prefix string) TicketEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &ticketEndpoints{
		service:    ticketsvc.New(db),
		documents:  documentsvc.New(db),
		auth:       authsvc.New(db),
		dispatcher: dispatcher,
		paths: TicketPaths{
			TicketsPath:  base + "/tickets",
			TicketPrefix: base + "/tickets/",
		},
	}
}

func (h *ticketEndpoints) Tickets(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListTickets,
		http.MethodPost: h.handleCreateTicket,
	})
}

func (h *ticketEndpoints) TicketSearch(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleSearchTickets,
	})
}

// TicketTree routes everything under /tickets/{code}: the ticket itself,
// status and close actions, replies, claim documents and vehicle info.
func (h *ticketEndpoints) TicketTree(w http.ResponseWriter, r *http.Request) error {
	code, rest, err := h.splitTicketPath(r.URL.Path)
	if err != nil {
		return err
	}

	switch {
	case len(rest) == 0:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleGetTicket(w, r, code)
			},
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleDeleteTicket(w, r, code)
			},
		})

	case rest[0] == "status" && len(rest) == 1:
		update := func(w http.ResponseWriter, r *http.Request) error {
			return h.handleUpdateStatus(w, r, code)
		}
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPut:   update,
			http.MethodPatch: update,
		})

	case rest[0] == "close" && len(rest) == 1:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleCloseTicket(w, r, code)
			},
		})

	case rest[0] == "replies" && len(rest) == 1:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleListReplies(w, r, code)
			},
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handlePostReply(w, r, code)
			},
		})

	case rest[0] == "claim-documents":
		return h.claimDocumentTree(w, r, code, rest[1:])

	case rest[0] == "vehicle-info" && len(rest) == 1:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPut: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUpdateVehicleInfo(w, r, code)
			},
		})

	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("unknown ticket subresource: %s", r.URL.Path),
		}
	}
}

func (h *ticketEndpoints) claimDocumentTree(w http.ResponseWriter, r *http.Request, code string, rest []string) error {
	switch {
	case len(rest) == 0:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleListClaimDocuments(w, r, code)
			},
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUploadClaimDocument(w, r, code)
			},
		})

	case len(rest) == 1:
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleDeleteClaimDocument(w, r, code, rest[0])
			},
		})

	case len(rest) == 2 && rest[1] == "download":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleDownloadClaimDocument(w, r, code, rest[0])
			},
		})

	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("unknown claim document path: %s", r.URL.Path),
		}
	}
}

func (h *ticketEndpoints) handleListTickets(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	result, err := h.service.List(r.Context(), ticketsvc.ListParams{
		Page:     page,
		PerPage:  perPage,
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Search:   query.Get("search"),
	})
	if err != nil {
		return h.serviceError(err)
	}

	resp := dto.ListTicketsResponse{
		Tickets: toTicketResponses(result.Tickets),
		Pagination: dto.Pagination{
			Page:       result.Page,
			PerPage:    result.PerPage,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *ticketEndpoints) handleCreateTicket(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create ticket request: %w", err),
		}
	}

	ticket, err := h.service.Create(r.Context(), ticketsvc.CreateParams{
		Subject:        req.Subject,
		Body:           req.Body,
		Email:          req.Email,
		CustomerName:   req.CustomerName,
		CustomerNumber: req.CustomerNumber,
		Priority:       req.Priority,
		Classification: req.Classification,
		CreationMethod: model.CreationMethodManual,
		Attachments:    toAttachmentItems(req.Attachments),
	})
	if err != nil {
		return h.serviceError(err)
	}

	notifyRooms(events.EventNewTicket, ticket.TicketCode, toTicketResponse(ticket), events.DashboardRoom)

	return WriteJSON(w, http.StatusCreated, dto.CreateTicketResponse{
		Success:        true,
		TicketCode:     ticket.TicketCode,
		CustomerNumber: ticket.CustomerNumber,
		Message:        "Ticket created successfully",
	})
}

func (h *ticketEndpoints) handleSearchTickets(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	tickets, err := h.service.Search(r.Context(), ticketsvc.SearchParams{
		Query:          query.Get("q"),
		Status:         query.Get("status"),
		Priority:       query.Get("priority"),
		Classification: query.Get("classification"),
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.SearchTicketsResponse{
		Tickets: toTicketResponses(tickets),
		Count:   len(tickets),
	})
}

func (h *ticketEndpoints) handleGetTicket(w http.ResponseWriter, r *http.Request, code string) error {
	ticket, err := h.service.Get(r.Context(), code)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toTicketResponse(ticket))
}

// handleDeleteTicket shares the /tickets/{code} pattern with the detail
// view, so the route-level guard only covers staff. The admin requirement
// is enforced here against the token role.
func (h *ticketEndpoints) handleDeleteTicket(w http.ResponseWriter, r *http.Request, code string) error {
	identity, err := h.auth.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil || identity.Role != internaljwt.RoleAdmin {
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "Admin access required",
			ErrorLog:   fmt.Errorf("ticket delete requires admin role"),
		}
	}

	if err := h.service.Delete(r.Context(), code); err != nil {
		return h.serviceError(err)
	}

	notifyRooms(events.EventTicketUpdated, code, nil, events.DashboardRoom)

	return WriteJSON(w, http.StatusOK, dto.TicketActionResponse{
		Success:    true,
		TicketCode: strings.ToUpper(strings.TrimSpace(code)),
		Message:    "Ticket deleted",
	})
}

func (h *ticketEndpoints) handleUpdateStatus(w http.ResponseWriter, r *http.Request, code string) error {
	var req dto.UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode status update request: %w", err),
		}
	}

	ticket, err := h.service.UpdateStatus(r.Context(), code, req.Status)
	if err != nil {
		return h.serviceError(err)
	}

	notifyRooms(events.EventTicketUpdated, ticket.TicketCode, toTicketResponse(ticket),
		events.TicketRoom(ticket.TicketCode), events.DashboardRoom)

	return WriteJSON(w, http.StatusOK, dto.TicketActionResponse{
		Success:    true,
		TicketCode: ticket.TicketCode,
		Status:     string(ticket.Status),
		Message:    fmt.Sprintf("Status updated to %s", ticket.Status),
	})
}

func (h *ticketEndpoints) handleCloseTicket(w http.ResponseWriter, r *http.Request, code string) error {
	ticket, err := h.service.Close(r.Context(), code, h.actorName(r))
	if err != nil {
		return h.serviceError(err)
	}

	notifyRooms(events.EventTicketUpdated, ticket.TicketCode, toTicketResponse(ticket),
		events.TicketRoom(ticket.TicketCode), events.DashboardRoom)

	return WriteJSON(w, http.StatusOK, dto.TicketActionResponse{
		Success:    true,
		TicketCode: ticket.TicketCode,
		Status:     string(ticket.Status),
		Message:    "Ticket closed successfully",
	})
}

func (h *ticketEndpoints) handleListReplies(w http.ResponseWriter, r *http.Request, code string) error {
	replies, err := h.service.ListReplies(r.Context(), code)
	if err != nil {
		return h.serviceError(err)
	}

	resp := dto.ListRepliesResponse{
		Replies: make([]dto.ReplyResponse, len(replies)),
		Count:   len(replies),
	}
	now := time.Now().UTC()
	for i, reply := range replies {
		resp.Replies[i] = toReplyResponse(reply, now)
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *ticketEndpoints) handlePostReply(w http.ResponseWriter, r *http.Request, code string) error {
	var req dto.PostReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode reply request: %w", err),
		}
	}

	senderName := h.actorName(r)
	result, err := h.service.PostReply(r.Context(), ticketsvc.ReplyParams{
		TicketCode:  code,
		Message:     req.Message,
		SenderName:  senderName,
		Attachments: toAttachmentItems(req.Attachments),
	})
	if err != nil {
		return h.serviceError(err)
	}

	replyResp := toReplyResponse(result.Reply, time.Now().UTC())

	// The automation platform emails the reply out; the snapshot carries both
	// the ticket and the reply body it should send.
	h.dispatcher.Dispatch(result.Ticket.TicketCode, map[string]interface{}{
		"ticket": toTicketResponse(result.Ticket),
		"reply":  replyResp,
	}, "reply_email", result.Reply.SenderName)

	notifyRooms(events.EventReplySent, result.Ticket.TicketCode, replyResp,
		events.TicketRoom(result.Ticket.TicketCode))

	return WriteJSON(w, http.StatusCreated, replyResp)
}

func (h *ticketEndpoints) handleListClaimDocuments(w http.ResponseWriter, r *http.Request, code string) error {
	documents, err := h.documents.List(r.Context(), code)
	if err != nil {
		return h.documentError(err)
	}

	resp := dto.ListClaimDocumentsResponse{
		Documents: make([]dto.ClaimDocumentResponse, len(documents)),
		Count:     len(documents),
	}
	for i, doc := range documents {
		resp.Documents[i] = toClaimDocumentResponse(doc)
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *ticketEndpoints) handleUploadClaimDocument(w http.ResponseWriter, r *http.Request, code string) error {
	var req dto.UploadClaimDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode claim document request: %w", err),
		}
	}

	doc, err := h.documents.Upload(r.Context(), documentsvc.UploadParams{
		TicketCode:  code,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Data:        req.Data,
		Description: req.Description,
		UploadedBy:  h.actorName(r),
	})
	if err != nil {
		return h.documentError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.UploadClaimDocumentResponse{
		Success:  true,
		Document: toClaimDocumentResponse(doc),
	})
}

func (h *ticketEndpoints) handleDeleteClaimDocument(w http.ResponseWriter, r *http.Request, code, documentID string) error {
	if err := h.documents.Delete(r.Context(), code, documentID); err != nil {
		return h.documentError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.DeleteClaimDocumentResponse{
		Success: true,
		Message: "Document deleted",
	})
}

func (h *ticketEndpoints) handleDownloadClaimDocument(w http.ResponseWriter, r *http.Request, code, documentID string) error {
	file, err := h.documents.Download(r.Context(), code, documentID)
	if err != nil {
		return h.documentError(err)
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(file.Data)
	return err
}

func (h *ticketEndpoints) handleUpdateVehicleInfo(w http.ResponseWriter, r *http.Request, code string) error {
	var info map[string]string
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode vehicle info request: %w", err),
		}
	}

	ticket, err := h.service.UpdateVehicleInfo(r.Context(), code, info)
	if err != nil {
		return h.serviceError(err)
	}

	notifyRooms(events.EventTicketUpdated, ticket.TicketCode, toTicketResponse(ticket),
		events.TicketRoom(ticket.TicketCode), events.DashboardRoom)

	return WriteJSON(w, http.StatusOK, dto.UpdateVehicleInfoResponse{
		Success:     true,
		VehicleInfo: ticket.VehicleInfo,
	})
}

// actorName resolves the signed-in member's display name for closedBy,
// referredBy and reply sender fields. Falls back to the token email when the
// member row is gone.
func (h *ticketEndpoints) actorName(r *http.Request) string {
	identity, err := h.auth.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}

	member, err := h.auth.Me(r.Context(), identity)
	if err != nil || member.Name == "" {
		return identity.Email
	}
	return member.Name
}

func (h *ticketEndpoints) splitTicketPath(path string) (string, []string, error) {
	trimmed := strings.TrimPrefix(path, h.paths.TicketPrefix)
	if trimmed == path {
		return "", nil, &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Ticket not found",
			ErrorLog:   fmt.Errorf("ticket path mismatch: %s", path),
		}
	}

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", nil, &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Ticket not found",
			ErrorLog:   fmt.Errorf("ticket code missing: %s", path),
		}
	}

	return parts[0], parts[1:], nil
}

func (h *ticketEndpoints) serviceError(err error) error {
	return ticketServiceError(err)
}

func ticketServiceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*ticketsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("ticket service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case ticketsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case ticketsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	case ticketsvc.ErrorCodeConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func (h *ticketEndpoints) documentError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*documentsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("document service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case documentsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case documentsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toTicketResponses(tickets []model.TicketItem) []dto.TicketResponse {
	out := make([]dto.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		out[i] = toTicketResponse(ticket)
	}
	return out
}

func toTicketResponse(ticket model.TicketItem) dto.TicketResponse {
	return dto.TicketResponse{
		TicketCode:         ticket.TicketCode,
		ThreadID:           ticket.ThreadID,
		Status:             string(ticket.Status),
		Priority:           string(ticket.Priority),
		Classification:     ticket.Classification,
		Email:              ticket.Email,
		CustomerName:       ticket.CustomerName,
		CustomerNumber:     ticket.CustomerNumber,
		Subject:            ticket.Subject,
		Body:               ticket.Body,
		AssignedTechnician: ticket.AssignedTechnician,
		CreationMethod:     ticket.CreationMethod,
		HasUnreadReply:     ticket.HasUnreadReply,
		LastReplyAt:        ticket.LastReplyAt,
		AttachmentCount:    len(ticket.Attachments),
		Attachments:        toAttachmentMetas(ticket.Attachments),
		VehicleInfo:        ticket.VehicleInfo,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
		ReferredAt:         ticket.ReferredAt,
		ReferredBy:         ticket.ReferredBy,
		ClosedAt:           ticket.ClosedAt,
		ClosedBy:           ticket.ClosedBy,
	}
}

func toReplyResponse(reply model.ReplyItem, now time.Time) dto.ReplyResponse {
	return dto.ReplyResponse{
		ReplyID:     reply.ReplyID,
		TicketCode:  reply.TicketCode,
		Message:     reply.Message,
		SenderName:  reply.SenderName,
		SenderType:  reply.SenderType,
		Attachments: toAttachmentMetas(reply.Attachments),
		CreatedAt:   reply.CreatedAt,
		TimeAgo:     utils.RelativeTime(utils.SafeParseTime(reply.CreatedAt), now),
	}
}

func toAttachmentMetas(attachments []model.AttachmentItem) []dto.AttachmentMeta {
	if len(attachments) == 0 {
		return nil
	}

	out := make([]dto.AttachmentMeta, len(attachments))
	for i, att := range attachments {
		size := ""
		if att.Data != "" {
			size = utils.FormatFileSize(int64(base64.StdEncoding.DecodedLen(len(att.Data))))
		}
		out[i] = dto.AttachmentMeta{
			Index:       i,
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Size:        size,
		}
	}
	return out
}

func toAttachmentItems(payloads []dto.AttachmentPayload) []model.AttachmentItem {
	if len(payloads) == 0 {
		return nil
	}

	out := make([]model.AttachmentItem, len(payloads))
	for i, p := range payloads {
		out[i] = model.AttachmentItem{
			Filename:    p.Filename,
			ContentType: p.ContentType,
			Data:        p.Data,
		}
	}
	return out
}

func toClaimDocumentResponse(doc model.ClaimDocumentItem) dto.ClaimDocumentResponse {
	return dto.ClaimDocumentResponse{
		DocumentID:     doc.DocumentID,
		TicketCode:     doc.TicketCode,
		Filename:       doc.Filename,
		ContentType:    doc.ContentType,
		Size:           utils.FormatFileSize(doc.Size),
		SizeBytes:      doc.Size,
		Description:    doc.Description,
		UploadedBy:     doc.UploadedBy,
		IsWarrantyForm: utils.DetectWarrantyForm(doc.Filename),
		FileType:       utils.FileTypeFor(doc.Filename),
		CreatedAt:      doc.CreatedAt,
	}
}
