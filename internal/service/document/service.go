package document

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

// Upload stores a claim document against a ticket. The payload arrives
// base64 encoded and is stored decoded; size is measured after decoding.
func (s *Service) Upload(ctx context.Context, params UploadParams) (model.ClaimDocumentItem, error) {
	ticketCode := strings.ToUpper(strings.TrimSpace(params.TicketCode))
	filename := strings.TrimSpace(params.Filename)

	if ticketCode == "" {
		return model.ClaimDocumentItem{}, newError(ErrorCodeValidation, "ticket code is required", nil)
	}
	if filename == "" {
		return model.ClaimDocumentItem{}, newError(ErrorCodeValidation, "file is required", nil)
	}
	if strings.TrimSpace(params.Data) == "" {
		return model.ClaimDocumentItem{}, newError(ErrorCodeValidation, "file data is required", nil)
	}
	if !utils.IsAllowedFile(filename) {
		return model.ClaimDocumentItem{}, newError(ErrorCodeValidation, "file type not allowed", nil)
	}

	if _, err := s.repo.GetTicket(ctx, ticketCode); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ClaimDocumentItem{}, newError(ErrorCodeNotFound, "ticket not found", err)
		}
		return model.ClaimDocumentItem{}, newError(ErrorCodeInternal, "failed to fetch ticket", err)
	}

	data, err := base64.StdEncoding.DecodeString(params.Data)
	if err != nil {
		return model.ClaimDocumentItem{}, newError(ErrorCodeValidation, "invalid file data", err)
	}

	contentType := strings.TrimSpace(params.ContentType)
	if contentType == "" {
		contentType = utils.MimeTypeFor(filename)
	}

	doc := model.ClaimDocumentItem{
		DocumentID:  uuid.NewString(),
		TicketCode:  ticketCode,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		Size:        int64(len(data)),
		Description: strings.TrimSpace(params.Description),
		UploadedBy:  strings.TrimSpace(params.UploadedBy),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateClaimDocument(ctx, doc); err != nil {
		return model.ClaimDocumentItem{}, newError(ErrorCodeInternal, "failed to save document", err)
	}

	return doc, nil
}

// List returns the ticket's claim documents with soft-deleted entries
// filtered out.
func (s *Service) List(ctx context.Context, ticketCode string) ([]model.ClaimDocumentItem, error) {
	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))
	if ticketCode == "" {
		return nil, newError(ErrorCodeValidation, "ticket code is required", nil)
	}

	docs, err := s.repo.ListClaimDocuments(ctx, ticketCode)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list documents", err)
	}

	visible := make([]model.ClaimDocumentItem, 0, len(docs))
	for _, doc := range docs {
		if doc.IsDeleted {
			continue
		}
		visible = append(visible, doc)
	}

	return visible, nil
}

// Delete soft-deletes a claim document. The row stays in the table so a
// misfiled form can be recovered.
func (s *Service) Delete(ctx context.Context, ticketCode, documentID string) error {
	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))
	documentID = strings.TrimSpace(documentID)

	if ticketCode == "" || documentID == "" {
		return newError(ErrorCodeValidation, "ticket code and document id are required", nil)
	}

	doc, err := s.repo.GetClaimDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrorCodeNotFound, "document not found", err)
		}
		return newError(ErrorCodeInternal, "failed to fetch document", err)
	}

	if doc.TicketCode != ticketCode {
		return newError(ErrorCodeNotFound, "document not found", nil)
	}

	deletedAt := s.now().UTC().Format(time.RFC3339)
	if err := s.repo.SoftDeleteClaimDocument(ctx, documentID, deletedAt); err != nil {
		return newError(ErrorCodeInternal, "failed to delete document", err)
	}

	return nil
}

// Download returns the decoded file for a live claim document. Soft-deleted
// documents download as not found.
func (s *Service) Download(ctx context.Context, ticketCode, documentID string) (DownloadResult, error) {
	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))
	documentID = strings.TrimSpace(documentID)

	if ticketCode == "" || documentID == "" {
		return DownloadResult{}, newError(ErrorCodeValidation, "ticket code and document id are required", nil)
	}

	doc, err := s.repo.GetClaimDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DownloadResult{}, newError(ErrorCodeNotFound, "document not found", err)
		}
		return DownloadResult{}, newError(ErrorCodeInternal, "failed to fetch document", err)
	}

	if doc.TicketCode != ticketCode || doc.IsDeleted {
		return DownloadResult{}, newError(ErrorCodeNotFound, "document not found", nil)
	}

	if len(doc.Data) == 0 {
		return DownloadResult{}, newError(ErrorCodeNotFound, "no file data available", nil)
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = utils.MimeTypeFor(doc.Filename)
	}

	return DownloadResult{
		Filename:    doc.Filename,
		ContentType: contentType,
		Data:        doc.Data,
	}, nil
}

// CommonDocuments lists the shared reference library.
func (s *Service) CommonDocuments(ctx context.Context) ([]model.CommonDocumentItem, error) {
	docs, err := s.repo.ListCommonDocuments(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list documents", err)
	}
	return docs, nil
}
