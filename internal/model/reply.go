package model

const (
	SenderTypeCustomer = "customer"
	SenderTypeAgent    = "agent"
	SenderTypeWebhook  = "webhook"
)

// ReplyItem carries a weak ticketCode back-reference: deleting a ticket
// leaves its replies in place.
type ReplyItem struct {
	ReplyID     string           `dynamodbav:"replyId"`
	TicketCode  string           `dynamodbav:"ticketCode"`
	Message     string           `dynamodbav:"message"`
	SenderName  string           `dynamodbav:"senderName,omitempty"`
	SenderType  string           `dynamodbav:"senderType"`
	Attachments []AttachmentItem `dynamodbav:"attachments,omitempty"`
	CreatedAt   string           `dynamodbav:"createdAt"`
}
