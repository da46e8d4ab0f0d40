package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	webhooksvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/webhook"
)

type WebhookEndpoints interface {
	TechDirectorRefer(http.ResponseWriter, *http.Request) error
	Status(http.ResponseWriter, *http.Request) error
	Health(http.ResponseWriter, *http.Request) error
	Cleanup(http.ResponseWriter, *http.Request) error
	Test(http.ResponseWriter, *http.Request) error
}

type WebhookPaths struct {
	TechDirectorPrefix string
	StatusPrefix       string
}

type webhookEndpoints struct {
	tickets    *ticketsvc.Service
	auth       *authsvc.Service
	dispatcher *webhooksvc.Dispatcher
	paths      WebhookPaths
}

func NewWebhookEndpoints(db *database.Database, dispatcher *webhooksvc.Dispatcher, prefix string) WebhookEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &webhookEndpoints{
		tickets:    ticketsvc.New(db),
		auth:       authsvc.New(db),
		dispatcher: dispatcher,
		paths: WebhookPaths{
			TechDirectorPrefix: base + "/webhook/tech-director/",
			StatusPrefix:       base + "/webhook/status/",
		},
	}
}

func (h *webhookEndpoints) TechDirectorRefer(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRefer,
	})
}

func (h *webhookEndpoints) Status(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleStatus,
	})
}

func (h *webhookEndpoints) Health(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleHealth,
	})
}

func (h *webhookEndpoints) Cleanup(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCleanup,
	})
}

func (h *webhookEndpoints) Test(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleTest,
	})
}

// handleRefer commits the referral first, then fires the webhook. A delivery
// failure shows up in the status store; the referral itself never rolls back.
func (h *webhookEndpoints) handleRefer(w http.ResponseWriter, r *http.Request) error {
	code, err := extractPathSuffix(r.URL.Path, h.paths.TechDirectorPrefix, "Ticket not found")
	if err != nil {
		return err
	}

	actor := h.actorName(r)
	ticket, err := h.tickets.Refer(r.Context(), code, actor)
	if err != nil {
		return ticketServiceError(err)
	}

	h.dispatcher.Dispatch(ticket.TicketCode, toTicketResponse(ticket), "referral", actor)

	notifyRooms(events.EventTicketUpdated, ticket.TicketCode, toTicketResponse(ticket),
		events.TicketRoom(ticket.TicketCode), events.DashboardRoom)

	return WriteJSON(w, http.StatusOK, dto.ReferTicketResponse{
		Success:  true,
		Message:  "Ticket referred to Technical Director",
		TicketID: ticket.TicketCode,
	})
}

func (h *webhookEndpoints) handleStatus(w http.ResponseWriter, r *http.Request) error {
	code, err := extractPathSuffix(r.URL.Path, h.paths.StatusPrefix, "Ticket not found")
	if err != nil {
		return err
	}
	code = strings.ToUpper(code)

	entry, ok := h.dispatcher.Status(code)
	if !ok {
		return WriteJSON(w, http.StatusOK, dto.WebhookStatusResponse{
			TicketCode: code,
			Status:     "unknown",
			Message:    "No webhook data found",
		})
	}

	return WriteJSON(w, http.StatusOK, dto.WebhookStatusResponse{
		TicketCode: code,
		Status:     string(entry.Status),
		Timestamp:  entry.Timestamp,
	})
}

func (h *webhookEndpoints) handleHealth(w http.ResponseWriter, r *http.Request) error {
	info := h.dispatcher.Health()

	return WriteJSON(w, http.StatusOK, dto.WebhookHealthResponse{
		Status:          "operational",
		WebhookURL:      info.URL,
		PendingWebhooks: info.Tracked,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *webhookEndpoints) handleCleanup(w http.ResponseWriter, r *http.Request) error {
	cleared := h.dispatcher.Cleanup()

	return WriteJSON(w, http.StatusOK, dto.WebhookCleanupResponse{
		Success: true,
		Cleared: cleared,
	})
}

func (h *webhookEndpoints) handleTest(w http.ResponseWriter, r *http.Request) error {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload) == 0 {
		payload = map[string]interface{}{
			"test":      true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
	}

	result, err := h.dispatcher.TestDelivery(payload)
	if err != nil {
		if errors.Is(err, webhooksvc.ErrTestTimeout) {
			return &HTTPError{
				StatusCode: http.StatusGatewayTimeout,
				Message:    "Webhook test timed out",
				ErrorLog:   err,
			}
		}
		return &HTTPError{
			StatusCode: http.StatusBadGateway,
			Message:    "Webhook test failed",
			ErrorLog:   err,
		}
	}

	return WriteJSON(w, http.StatusOK, dto.WebhookTestResponse{
		Success:    result.StatusCode == http.StatusOK,
		StatusCode: result.StatusCode,
		Body:       result.Body,
		DurationMS: result.Duration.Milliseconds(),
	})
}

func (h *webhookEndpoints) actorName(r *http.Request) string {
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

func extractPathSuffix(path, prefix, notFoundMessage string) (string, error) {
	trimmed := strings.TrimPrefix(path, prefix)
	if trimmed == path {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    notFoundMessage,
			ErrorLog:   fmt.Errorf("path mismatch: %s", path),
		}
	}

	value := strings.Trim(trimmed, "/")
	if value == "" || strings.Contains(value, "/") {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    notFoundMessage,
			ErrorLog:   fmt.Errorf("invalid path: %s", path),
		}
	}

	return value, nil
}
