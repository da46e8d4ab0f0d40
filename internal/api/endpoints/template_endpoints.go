package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	templatesvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/template"
)

type TemplateEndpoints interface {
	EmailTemplate(http.ResponseWriter, *http.Request) error
	AIResponse(http.ResponseWriter, *http.Request) error
	AIDisplayResponse(http.ResponseWriter, *http.Request) error
	AIHealth(http.ResponseWriter, *http.Request) error
}

type TemplatePaths struct {
	EmailTemplatePrefix string
	AIResponsePrefix    string
}

type templateEndpoints struct {
	service *templatesvc.Service
	paths   TemplatePaths
}

func NewTemplateEndpoints(db *database.Database, basePath string) TemplateEndpoints {
	return NewTemplateEndpointsWithService(templatesvc.New(db), TemplatePaths{
		EmailTemplatePrefix: basePath + "/email-template/",
		AIResponsePrefix:    basePath + "/ai/get-response/",
	})
}

func NewTemplateEndpointsWithService(service *templatesvc.Service, paths TemplatePaths) TemplateEndpoints {
	return &templateEndpoints{
		service: service,
		paths:   paths,
	}
}

func (h *templateEndpoints) EmailTemplate(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleEmailTemplate,
	})
}

func (h *templateEndpoints) AIResponse(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleAIResponse,
	})
}

func (h *templateEndpoints) AIDisplayResponse(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleAIDisplayPing,
		http.MethodPost: h.handleAIDisplayEcho,
	})
}

func (h *templateEndpoints) AIHealth(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleAIHealth,
	})
}

func (h *templateEndpoints) handleEmailTemplate(w http.ResponseWriter, r *http.Request) error {
	templateType, ticketCode, err := h.splitTemplatePath(r.URL.Path)
	if err != nil {
		return err
	}

	result, svcErr := h.service.EmailTemplate(r.Context(), templateType, ticketCode)
	if svcErr != nil {
		return h.serviceError(svcErr)
	}

	return WriteJSON(w, http.StatusOK, dto.EmailTemplateResponse{
		Success:        true,
		TicketCode:     strings.ToUpper(strings.TrimSpace(ticketCode)),
		TemplateType:   result.TemplateType,
		Subject:        result.Subject,
		Body:           result.Body,
		RecipientEmail: result.RecipientEmail,
		Attachments:    toAttachmentMetas(result.Attachments),
		ContentSource:  result.ContentSource,
		HasDraft:       result.HasDraft,
	})
}

// handleAIResponse serves the canned compose draft. There is no ticket
// lookup here; the draft only references the code, so a stale code still
// gets a usable reply skeleton.
func (h *templateEndpoints) handleAIResponse(w http.ResponseWriter, r *http.Request) error {
	ticketCode, err := extractPathSuffix(r.URL.Path, h.paths.AIResponsePrefix, "Ticket code is required")
	if err != nil {
		return err
	}

	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))

	return WriteJSON(w, http.StatusOK, dto.AIDraftResponse{
		Success:    true,
		TicketCode: ticketCode,
		Response:   templatesvc.AIResponse(ticketCode),
		Source:     "canned",
	})
}

func (h *templateEndpoints) handleAIDisplayPing(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, dto.AIDisplayResponse{
		Success:   true,
		Message:   "AI Display API is working",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *templateEndpoints) handleAIDisplayEcho(w http.ResponseWriter, r *http.Request) error {
	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		data = map[string]interface{}{}
	}

	return WriteJSON(w, http.StatusOK, dto.AIDisplayResponse{
		Success:   true,
		Message:   "AI response received",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *templateEndpoints) handleAIHealth(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, dto.AIHealthResponse{
		Status:    "healthy",
		Service:   "ai",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *templateEndpoints) splitTemplatePath(path string) (string, string, error) {
	notFound := func(reason string) error {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Template not found",
			ErrorLog:   fmt.Errorf("%s: %s", reason, path),
		}
	}

	trimmed := strings.TrimPrefix(path, h.paths.EmailTemplatePrefix)
	if trimmed == path {
		return "", "", notFound("template path mismatch")
	}

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", notFound("malformed template path")
	}

	return parts[0], parts[1], nil
}

func (h *templateEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*templatesvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("template service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case templatesvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case templatesvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}
