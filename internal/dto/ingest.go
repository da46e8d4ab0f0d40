package dto

// InboundPayload is the raw body accepted from the automation platform and
// other external senders. Integrations disagree on key names, so every
// logical field lists its known spellings here and normalization collapses
// them in one place; nothing downstream reads these fields directly.
type InboundPayload struct {
	TicketID    string `json:"ticket_id,omitempty"`
	TicketIDAlt string `json:"ticketId,omitempty"`
	ThreadID    string `json:"thread_id,omitempty"`

	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`

	Message  string `json:"message,omitempty"`
	Response string `json:"response,omitempty"`
	Reply    string `json:"reply,omitempty"`
	Content  string `json:"content,omitempty"`

	From          string `json:"from,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
	Name          string `json:"name,omitempty"`

	Priority       string `json:"priority,omitempty"`
	Classification string `json:"classification,omitempty"`

	Attachments []InboundAttachment `json:"attachments,omitempty"`
}

type InboundAttachment struct {
	Filename    string `json:"filename,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Data        string `json:"data,omitempty"`
	FileData    string `json:"fileData,omitempty"`
}

type InboundResponse struct {
	Success    bool   `json:"success"`
	TicketCode string `json:"ticket_code"`
	Created    bool   `json:"created"`
	Message    string `json:"message,omitempty"`
}

type InboundReplyResponse struct {
	Success    bool   `json:"success"`
	TicketCode string `json:"ticket_code"`
	ReplyID    string `json:"reply_id,omitempty"`
	Message    string `json:"message,omitempty"`
}
