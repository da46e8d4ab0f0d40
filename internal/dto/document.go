package dto

import "github.com/autoassistgroup-dev/AutoAssist--portal/utils"

type ClaimDocumentResponse struct {
	DocumentID     string             `json:"document_id"`
	TicketCode     string             `json:"ticket_code"`
	Filename       string             `json:"filename"`
	ContentType    string             `json:"content_type,omitempty"`
	Size           string             `json:"size"`
	SizeBytes      int64              `json:"size_bytes"`
	Description    string             `json:"description,omitempty"`
	UploadedBy     string             `json:"uploaded_by,omitempty"`
	IsWarrantyForm bool               `json:"is_warranty_form"`
	FileType       utils.FileTypeInfo `json:"file_type"`
	CreatedAt      string             `json:"created_at"`
}

type ListClaimDocumentsResponse struct {
	Documents []ClaimDocumentResponse `json:"documents"`
	Count     int                     `json:"count"`
}

type UploadClaimDocumentRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Description string `json:"description,omitempty"`
	// Data is base64 encoded file content.
	Data string `json:"data"`
}

type UploadClaimDocumentResponse struct {
	Success  bool                  `json:"success"`
	Document ClaimDocumentResponse `json:"document"`
}

type DeleteClaimDocumentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UpdateVehicleInfoResponse struct {
	Success     bool              `json:"success"`
	VehicleInfo map[string]string `json:"vehicle_info"`
}

type CommonDocumentResponse struct {
	DocumentID  string             `json:"document_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"category,omitempty"`
	Filename    string             `json:"filename"`
	Size        string             `json:"size"`
	FileType    utils.FileTypeInfo `json:"file_type"`
	CreatedAt   string             `json:"created_at"`
}

type ListCommonDocumentsResponse struct {
	Documents []CommonDocumentResponse `json:"documents"`
	Count     int                      `json:"count"`
}
