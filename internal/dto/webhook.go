package dto

type WebhookStatusResponse struct {
	TicketCode string `json:"ticket_code"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp,omitempty"`
	Message    string `json:"message,omitempty"`
}

type WebhookHealthResponse struct {
	Status          string `json:"status"`
	WebhookURL      string `json:"webhook_url"`
	PendingWebhooks int    `json:"pending_webhooks"`
	Timestamp       string `json:"timestamp"`
}

type WebhookCleanupResponse struct {
	Success bool `json:"success"`
	Cleared int  `json:"cleared"`
}

type WebhookTestResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type ReferTicketResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TicketID string `json:"ticket_id"`
}
