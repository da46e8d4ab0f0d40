package endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	attachmentsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/attachment"
)

type AttachmentEndpoints interface {
	TicketAttachments(http.ResponseWriter, *http.Request) error
	ReplyAttachments(http.ResponseWriter, *http.Request) error
}

type AttachmentPaths struct {
	TicketPrefix string
	ReplyPrefix  string
}

type attachmentEndpoints struct {
	service *attachmentsvc.Service
	paths   AttachmentPaths
}

func NewAttachmentEndpoints(db *database.Database, basePath string) AttachmentEndpoints {
	return NewAttachmentEndpointsWithService(attachmentsvc.New(db), AttachmentPaths{
		TicketPrefix: basePath + "/attachments/ticket/",
		ReplyPrefix:  basePath + "/attachments/reply/",
	})
}

func NewAttachmentEndpointsWithService(service *attachmentsvc.Service, paths AttachmentPaths) AttachmentEndpoints {
	return &attachmentEndpoints{
		service: service,
		paths:   paths,
	}
}

func (h *attachmentEndpoints) TicketAttachments(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleTicketAttachment,
	})
}

func (h *attachmentEndpoints) ReplyAttachments(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleReplyAttachment,
	})
}

func (h *attachmentEndpoints) handleTicketAttachment(w http.ResponseWriter, r *http.Request) error {
	code, index, preview, err := splitAttachmentPath(r.URL.Path, h.paths.TicketPrefix)
	if err != nil {
		return err
	}

	file, svcErr := h.service.TicketAttachment(r.Context(), code, index)
	if svcErr != nil {
		return h.serviceError(svcErr)
	}

	return writeAttachment(w, file, preview)
}

func (h *attachmentEndpoints) handleReplyAttachment(w http.ResponseWriter, r *http.Request) error {
	replyID, index, preview, err := splitAttachmentPath(r.URL.Path, h.paths.ReplyPrefix)
	if err != nil {
		return err
	}

	file, svcErr := h.service.ReplyAttachment(r.Context(), replyID, index)
	if svcErr != nil {
		return h.serviceError(svcErr)
	}

	return writeAttachment(w, file, preview)
}

// splitAttachmentPath parses {id}/{index} with an optional trailing
// /preview segment. Anything else under the prefix is a 404.
func splitAttachmentPath(path, prefix string) (string, int, bool, error) {
	notFound := func(reason string) error {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Attachment not found",
			ErrorLog:   fmt.Errorf("%s: %s", reason, path),
		}
	}

	trimmed := strings.TrimPrefix(path, prefix)
	if trimmed == path {
		return "", 0, false, notFound("attachment path mismatch")
	}

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	preview := false
	if len(parts) == 3 && parts[2] == "preview" {
		preview = true
		parts = parts[:2]
	}
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false, notFound("malformed attachment path")
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false, notFound("bad attachment index")
	}

	return parts[0], index, preview, nil
}

func writeAttachment(w http.ResponseWriter, file attachmentsvc.File, preview bool) error {
	disposition := "attachment"
	if preview {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(file.Data)
	return err
}

func (h *attachmentEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*attachmentsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("attachment service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case attachmentsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case attachmentsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}
