package endpoints

import (
	"fmt"
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	documentsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/document"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

// DocumentEndpoints serves the shared document library. Per-ticket claim
// documents live under the ticket tree instead.
type DocumentEndpoints interface {
	CommonDocuments(http.ResponseWriter, *http.Request) error
}

type documentEndpoints struct {
	service *documentsvc.Service
}

func NewDocumentEndpoints(db *database.Database) DocumentEndpoints {
	return &documentEndpoints{
		service: documentsvc.New(db),
	}
}

func NewDocumentEndpointsWithService(service *documentsvc.Service) DocumentEndpoints {
	return &documentEndpoints{service: service}
}

func (h *documentEndpoints) CommonDocuments(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListCommonDocuments,
	})
}

func (h *documentEndpoints) handleListCommonDocuments(w http.ResponseWriter, r *http.Request) error {
	docs, err := h.service.CommonDocuments(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	out := make([]dto.CommonDocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = toCommonDocumentResponse(doc)
	}

	return WriteJSON(w, http.StatusOK, dto.ListCommonDocumentsResponse{
		Documents: out,
		Count:     len(out),
	})
}

func toCommonDocumentResponse(doc model.CommonDocumentItem) dto.CommonDocumentResponse {
	return dto.CommonDocumentResponse{
		DocumentID:  doc.DocumentID,
		Title:       doc.Title,
		Description: doc.Description,
		Category:    doc.Category,
		Filename:    doc.Filename,
		Size:        utils.FormatFileSize(doc.Size),
		FileType:    utils.FileTypeFor(doc.Filename),
		CreatedAt:   doc.CreatedAt,
	}
}

func (h *documentEndpoints) serviceError(err error) error {
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
