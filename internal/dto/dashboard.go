package dto

type StatsResponse struct {
	Total            int            `json:"total"`
	Open             int            `json:"open"`
	Waiting          int            `json:"waiting"`
	Resolved         int            `json:"resolved"`
	ByPriority       map[string]int `json:"by_priority"`
	ByClassification map[string]int `json:"by_classification"`
	ByStatus         map[string]int `json:"by_status"`
}

type TeamMemberStats struct {
	Technician string `json:"technician"`
	Open       int    `json:"open"`
	Closed     int    `json:"closed"`
}

type DashboardResponse struct {
	Approved        int               `json:"approved"`
	Declined        int               `json:"declined"`
	Referred        int               `json:"referred"`
	Overdue         int               `json:"overdue"`
	OpenRecent      int               `json:"open_recent"`
	OpenedToday     int               `json:"opened_today"`
	UnreadReplies   int               `json:"unread_replies"`
	TeamPerformance []TeamMemberStats `json:"team_performance"`
}

type TechDirectorDashboardResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Count   int              `json:"count"`
}

type StatusPageResponse struct {
	Active        int    `json:"active"`
	Waiting       int    `json:"waiting"`
	ResolvedToday int    `json:"resolved_today"`
	Timestamp     string `json:"timestamp"`
}

type TicketGroup struct {
	Label   string           `json:"label"`
	Tickets []TicketResponse `json:"tickets"`
}

type RecentTicketsResponse struct {
	Groups []TicketGroup `json:"groups"`
	Count  int           `json:"count"`
}
