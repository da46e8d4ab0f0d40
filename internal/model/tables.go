package model

const (
	TicketsTable         = "PortalTickets"
	RepliesTable         = "PortalReplies"
	MembersTable         = "PortalMembers"
	ClaimDocumentsTable  = "PortalClaimDocuments"
	CommonDocumentsTable = "PortalCommonDocuments"
)

// Secondary indexes. Repositories fall back to a filtered scan when an index
// is missing so a half-provisioned local table still works.
const (
	TicketsByThreadIndex   = "byThread"
	TicketsByEmailIndex    = "byEmail"
	RepliesByTicketIndex   = "byTicket"
	MembersByEmailIndex    = "byEmail"
	ClaimDocsByTicketIndex = "byTicket"
)
