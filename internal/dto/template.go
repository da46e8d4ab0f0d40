package dto

type EmailTemplateResponse struct {
	Success        bool             `json:"success"`
	TicketCode     string           `json:"ticket_code"`
	TemplateType   string           `json:"template_type"`
	Subject        string           `json:"subject"`
	Body           string           `json:"body"`
	RecipientEmail string           `json:"recipient_email,omitempty"`
	Attachments    []AttachmentMeta `json:"attachments,omitempty"`
	ContentSource  string           `json:"content_source,omitempty"`
	HasDraft       bool             `json:"has_draft"`
}

type AIDraftResponse struct {
	Success    bool   `json:"success"`
	TicketCode string `json:"ticket_code,omitempty"`
	Response   string `json:"response"`
	Source     string `json:"source,omitempty"`
}

type AIDisplayResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type AIHealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
