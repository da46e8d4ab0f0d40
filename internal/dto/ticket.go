package dto

type AttachmentMeta struct {
	Index       int    `json:"index"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        string `json:"size,omitempty"`
}

type AttachmentPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	// Data is base64 encoded file content.
	Data string `json:"data"`
}

type TicketResponse struct {
	TicketCode         string            `json:"ticket_code"`
	ThreadID           string            `json:"thread_id,omitempty"`
	Status             string            `json:"status"`
	Priority           string            `json:"priority"`
	Classification     string            `json:"classification,omitempty"`
	Email              string            `json:"email,omitempty"`
	CustomerName       string            `json:"customer_name,omitempty"`
	CustomerNumber     string            `json:"customer_number,omitempty"`
	Subject            string            `json:"subject,omitempty"`
	Body               string            `json:"body,omitempty"`
	AssignedTechnician string            `json:"assigned_technician,omitempty"`
	CreationMethod     string            `json:"creation_method,omitempty"`
	HasUnreadReply     bool              `json:"has_unread_reply"`
	LastReplyAt        string            `json:"last_reply_at,omitempty"`
	AttachmentCount    int               `json:"attachment_count"`
	Attachments        []AttachmentMeta  `json:"attachments,omitempty"`
	VehicleInfo        map[string]string `json:"vehicle_info,omitempty"`
	CreatedAt          string            `json:"created_at"`
	UpdatedAt          string            `json:"updated_at"`
	ReferredAt         string            `json:"referred_at,omitempty"`
	ReferredBy         string            `json:"referred_by,omitempty"`
	ClosedAt           string            `json:"closed_at,omitempty"`
	ClosedBy           string            `json:"closed_by,omitempty"`
}

type CreateTicketRequest struct {
	Subject        string              `json:"subject"`
	Body           string              `json:"body"`
	Email          string              `json:"email"`
	CustomerName   string              `json:"customer_name,omitempty"`
	CustomerNumber string              `json:"customer_number,omitempty"`
	Priority       string              `json:"priority,omitempty"`
	Classification string              `json:"classification,omitempty"`
	Attachments    []AttachmentPayload `json:"attachments,omitempty"`
}

type CreateTicketResponse struct {
	Success        bool   `json:"success"`
	TicketCode     string `json:"ticket_code"`
	CustomerNumber string `json:"customer_number,omitempty"`
	Message        string `json:"message,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type ListTicketsResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	Pagination Pagination       `json:"pagination"`
}

type SearchTicketsResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Count   int              `json:"count"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

type TicketActionResponse struct {
	Success    bool   `json:"success"`
	TicketCode string `json:"ticket_code"`
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
}

type PostReplyRequest struct {
	Message     string              `json:"message"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`
}

type ReplyResponse struct {
	ReplyID     string           `json:"reply_id"`
	TicketCode  string           `json:"ticket_code"`
	Message     string           `json:"message"`
	SenderName  string           `json:"sender_name,omitempty"`
	SenderType  string           `json:"sender_type"`
	Attachments []AttachmentMeta `json:"attachments,omitempty"`
	CreatedAt   string           `json:"created_at"`
	TimeAgo     string           `json:"time_ago,omitempty"`
}

type ListRepliesResponse struct {
	Replies []ReplyResponse `json:"replies"`
	Count   int             `json:"count"`
}
