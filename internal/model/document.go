package model

// ClaimDocumentItem is a per-ticket claim document. Deletion is soft so a
// misfiled claim form can be recovered by an admin.
type ClaimDocumentItem struct {
	DocumentID  string `dynamodbav:"documentId"`
	TicketCode  string `dynamodbav:"ticketCode"`
	Filename    string `dynamodbav:"filename"`
	ContentType string `dynamodbav:"contentType"`
	Data        []byte `dynamodbav:"data"`
	Size        int64  `dynamodbav:"size"`
	Description string `dynamodbav:"description,omitempty"`
	UploadedBy  string `dynamodbav:"uploadedBy,omitempty"`
	IsDeleted   bool   `dynamodbav:"isDeleted"`
	DeletedAt   string `dynamodbav:"deletedAt,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
}

// CommonDocumentItem is a shared reference document visible to every
// member, for example a warranty process guide.
type CommonDocumentItem struct {
	DocumentID  string `dynamodbav:"documentId"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description,omitempty"`
	Category    string `dynamodbav:"category,omitempty"`
	Filename    string `dynamodbav:"filename"`
	ContentType string `dynamodbav:"contentType"`
	Data        []byte `dynamodbav:"data"`
	Size        int64  `dynamodbav:"size"`
	UploadedBy  string `dynamodbav:"uploadedBy,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
}
