package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	dashboardsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/dashboard"
)

type DashboardEndpoints interface {
	Stats(http.ResponseWriter, *http.Request) error
	Dashboard(http.ResponseWriter, *http.Request) error
	TechDirectorDashboard(http.ResponseWriter, *http.Request) error
	StatusPage(http.ResponseWriter, *http.Request) error
	RecentTickets(http.ResponseWriter, *http.Request) error
}

type dashboardEndpoints struct {
	service *dashboardsvc.Service
}

func NewDashboardEndpoints(db *database.Database) DashboardEndpoints {
	return &dashboardEndpoints{
		service: dashboardsvc.New(db),
	}
}

func NewDashboardEndpointsWithService(service *dashboardsvc.Service) DashboardEndpoints {
	return &dashboardEndpoints{service: service}
}

func (h *dashboardEndpoints) Stats(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleStats,
	})
}

func (h *dashboardEndpoints) Dashboard(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleDashboard,
	})
}

func (h *dashboardEndpoints) TechDirectorDashboard(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleTechDirectorDashboard,
	})
}

func (h *dashboardEndpoints) StatusPage(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleStatusPage,
	})
}

func (h *dashboardEndpoints) RecentTickets(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleRecentTickets,
	})
}

func (h *dashboardEndpoints) handleStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.StatsResponse{
		Total:            stats.Total,
		Open:             stats.Open,
		Waiting:          stats.Waiting,
		Resolved:         stats.Resolved,
		ByPriority:       stats.ByPriority,
		ByClassification: stats.ByClassification,
		ByStatus:         stats.ByStatus,
	})
}

func (h *dashboardEndpoints) handleDashboard(w http.ResponseWriter, r *http.Request) error {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	team := make([]dto.TeamMemberStats, len(overview.Team))
	for i, load := range overview.Team {
		team[i] = dto.TeamMemberStats{
			Technician: load.Technician,
			Open:       load.Open,
			Closed:     load.Closed,
		}
	}

	return WriteJSON(w, http.StatusOK, dto.DashboardResponse{
		Approved:        overview.Approved,
		Declined:        overview.Declined,
		Referred:        overview.Referred,
		Overdue:         overview.Overdue,
		OpenRecent:      overview.OpenRecent,
		OpenedToday:     overview.OpenedToday,
		UnreadReplies:   overview.UnreadReplies,
		TeamPerformance: team,
	})
}

func (h *dashboardEndpoints) handleTechDirectorDashboard(w http.ResponseWriter, r *http.Request) error {
	tickets, err := h.service.ReferredQueue(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.TechDirectorDashboardResponse{
		Tickets: toTicketResponses(tickets),
		Count:   len(tickets),
	})
}

func (h *dashboardEndpoints) handleStatusPage(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.service.StatusSummary(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.StatusPageResponse{
		Active:        summary.Active,
		Waiting:       summary.Waiting,
		ResolvedToday: summary.ResolvedToday,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *dashboardEndpoints) handleRecentTickets(w http.ResponseWriter, r *http.Request) error {
	groups, err := h.service.RecentGroups(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	resp := dto.RecentTicketsResponse{
		Groups: make([]dto.TicketGroup, len(groups)),
	}
	for i, group := range groups {
		resp.Groups[i] = dto.TicketGroup{
			Label:   group.Label,
			Tickets: toTicketResponses(group.Tickets),
		}
		resp.Count += len(group.Tickets)
	}

	return WriteJSON(w, http.StatusOK, resp)
}

func (h *dashboardEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*dashboardsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("dashboard service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		ErrorLog:   errorLog,
	}
}
