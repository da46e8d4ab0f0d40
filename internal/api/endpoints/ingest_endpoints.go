package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
	ingestsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ingest"
)

type IngestEndpoints interface {
	InboundTickets(http.ResponseWriter, *http.Request) error
	InboundReplies(http.ResponseWriter, *http.Request) error
}

type ingestEndpoints struct {
	service *ingestsvc.Service
}

func NewIngestEndpoints(db *database.Database) IngestEndpoints {
	return &ingestEndpoints{
		service: ingestsvc.New(db),
	}
}

func NewIngestEndpointsWithService(service *ingestsvc.Service) IngestEndpoints {
	return &ingestEndpoints{service: service}
}

func (h *ingestEndpoints) InboundTickets(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleInboundTicket,
	})
}

func (h *ingestEndpoints) InboundReplies(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleInboundReply,
	})
}

func (h *ingestEndpoints) handleInboundTicket(w http.ResponseWriter, r *http.Request) error {
	var payload dto.InboundPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode inbound payload: %w", err),
		}
	}

	result, err := h.service.ReconcileInbound(r.Context(), payload)
	if err != nil {
		return h.serviceError(err)
	}

	h.notify(result)

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	return WriteJSON(w, status, dto.InboundResponse{
		Success:    true,
		TicketCode: result.TicketCode,
		Created:    result.Created,
		Message:    result.Message,
	})
}

func (h *ingestEndpoints) handleInboundReply(w http.ResponseWriter, r *http.Request) error {
	var payload dto.InboundPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode inbound reply payload: %w", err),
		}
	}

	result, err := h.service.RecordReply(r.Context(), payload)
	if err != nil {
		return h.serviceError(err)
	}

	h.notify(result)

	return WriteJSON(w, http.StatusOK, dto.InboundReplyResponse{
		Success:    true,
		TicketCode: result.TicketCode,
		ReplyID:    result.ReplyID,
		Message:    result.Message,
	})
}

// notify publishes the envelopes a resolution earned. Payload data stays
// empty here; dashboards refetch on event rather than trusting a relayed
// copy of an unauthenticated payload.
func (h *ingestEndpoints) notify(result ingestsvc.Result) {
	if result.Created {
		notifyRooms(events.EventNewTicket, result.TicketCode, nil, events.DashboardRoom)
		return
	}

	if result.ReplyID != "" {
		notifyRooms(events.EventNewReply, result.TicketCode, nil,
			events.TicketRoom(result.TicketCode))
		notifyRooms(events.EventTicketUpdated, result.TicketCode, nil,
			events.TicketRoom(result.TicketCode), events.DashboardRoom)
	}
}

func (h *ingestEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*ingestsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("ingest service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case ingestsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case ingestsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}
