package model

import "strings"

type TicketStatus string

const (
	TicketStatusNew             TicketStatus = "New"
	TicketStatusOpen            TicketStatus = "Open"
	TicketStatusInProgress      TicketStatus = "In Progress"
	TicketStatusWaitingCustomer TicketStatus = "Waiting for Customer"
	TicketStatusWaitingParts    TicketStatus = "Waiting for Parts"
	TicketStatusReferred        TicketStatus = "Referred to Tech Director"
	TicketStatusCustomerReplied TicketStatus = "Customer Replied"
	TicketStatusApproved        TicketStatus = "Approved"
	TicketStatusRevisit         TicketStatus = "Revisit"
	TicketStatusDeclined        TicketStatus = "Declined"
	TicketStatusNotCovered      TicketStatus = "Not Covered"
	TicketStatusResolved        TicketStatus = "Resolved"
	TicketStatusClosed          TicketStatus = "Closed"
)

// The status enumeration is open: imports and the automation platform can
// write values outside the constants above, so the dashboard predicates
// match on substrings the same way the reporting queries always have.

func (s TicketStatus) IsOpen() bool {
	return s == TicketStatusOpen || s == TicketStatusNew
}

func (s TicketStatus) IsWaiting() bool {
	return strings.Contains(string(s), "Waiting")
}

func (s TicketStatus) IsReferred() bool {
	return strings.Contains(string(s), "Referred")
}

func (s TicketStatus) IsResolved() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

func (s TicketStatus) IsActive() bool {
	return !s.IsResolved()
}

type TicketPriority string

const (
	PriorityUrgent TicketPriority = "Urgent"
	PriorityFast   TicketPriority = "Fast"
	PriorityHigh   TicketPriority = "High"
	PriorityMedium TicketPriority = "Medium"
	PriorityLow    TicketPriority = "Low"
)

var Priorities = []TicketPriority{PriorityUrgent, PriorityFast, PriorityHigh, PriorityMedium, PriorityLow}

var Classifications = []string{
	"Technical Issue",
	"Payment",
	"Support",
	"Warranty Claim",
	"Spam",
	"Account",
}

const (
	CreationMethodAPI     = "api"
	CreationMethodWebhook = "webhook"
	CreationMethodManual  = "manual"
)

type AttachmentItem struct {
	Filename    string `dynamodbav:"filename" json:"filename"`
	ContentType string `dynamodbav:"contentType,omitempty" json:"content_type,omitempty"`
	Data        string `dynamodbav:"data" json:"data"`
}

type TicketItem struct {
	TicketCode         string            `dynamodbav:"ticketCode"`
	ThreadID           string            `dynamodbav:"threadId,omitempty"`
	Status             TicketStatus      `dynamodbav:"status"`
	Priority           TicketPriority    `dynamodbav:"priority"`
	Classification     string            `dynamodbav:"classification,omitempty"`
	Email              string            `dynamodbav:"email,omitempty"`
	CustomerName       string            `dynamodbav:"customerName,omitempty"`
	CustomerNumber     string            `dynamodbav:"customerNumber,omitempty"`
	Subject            string            `dynamodbav:"subject,omitempty"`
	Body               string            `dynamodbav:"body,omitempty"`
	AssignedTechnician string            `dynamodbav:"assignedTechnician,omitempty"`
	AIDraft            string            `dynamodbav:"aiDraft,omitempty"`
	CreationMethod     string            `dynamodbav:"creationMethod,omitempty"`
	HasUnreadReply     bool              `dynamodbav:"hasUnreadReply"`
	LastReplyAt        string            `dynamodbav:"lastReplyAt,omitempty"`
	Attachments        []AttachmentItem  `dynamodbav:"attachments,omitempty"`
	VehicleInfo        map[string]string `dynamodbav:"vehicleInfo,omitempty"`
	CreatedAt          string            `dynamodbav:"createdAt"`
	UpdatedAt          string            `dynamodbav:"updatedAt"`
	ReferredAt         string            `dynamodbav:"referredAt,omitempty"`
	ReferredBy         string            `dynamodbav:"referredBy,omitempty"`
	ClosedAt           string            `dynamodbav:"closedAt,omitempty"`
	ClosedBy           string            `dynamodbav:"closedBy,omitempty"`
}
