package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/websocket"
)

type WSEndpoints interface {
	DashboardSocket(http.ResponseWriter, *http.Request) error
	TicketSocket(http.ResponseWriter, *http.Request) error
	Rooms(http.ResponseWriter, *http.Request) error
}

type WSPaths struct {
	TicketPrefix string
}

type wsEndpoints struct {
	auth    *authsvc.Service
	handler *websocket.Handler
	paths   WSPaths
}

func NewWSEndpoints(db *database.Database, handler *websocket.Handler, prefix string) WSEndpoints {
	return NewWSEndpointsWithService(authsvc.New(db), handler, WSPaths{
		TicketPrefix: strings.TrimRight(prefix, "/") + "/tickets/",
	})
}

func NewWSEndpointsWithService(auth *authsvc.Service, handler *websocket.Handler, paths WSPaths) WSEndpoints {
	return &wsEndpoints{
		auth:    auth,
		handler: handler,
		paths:   paths,
	}
}

// DashboardSocket joins the shared dashboard room. The room exists for the
// lifetime of the server, so this only authenticates and upgrades.
func (h *wsEndpoints) DashboardSocket(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.identity(r)
	if err != nil {
		return err
	}

	h.ensureRoom(events.DashboardRoom)
	h.handler.JoinRoom(w, r, events.DashboardRoom, identity.MemberID)
	return nil
}

// TicketSocket joins the per-ticket room, creating it on first join. The
// room name is derived from the code alone; a code with no ticket behind it
// just yields a silent room.
func (h *wsEndpoints) TicketSocket(w http.ResponseWriter, r *http.Request) error {
	code, err := extractPathSuffix(r.URL.Path, h.paths.TicketPrefix, "Ticket not found")
	if err != nil {
		return err
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	identity, err := h.identity(r)
	if err != nil {
		return err
	}

	roomID := events.TicketRoom(code)
	h.ensureRoom(roomID)
	h.handler.JoinRoom(w, r, roomID, identity.MemberID)
	return nil
}

func (h *wsEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
			h.handler.GetRooms(w, r)
			return nil
		},
	})
}

// identity authenticates the websocket handshake. The token rides in the
// query string because browsers cannot set headers on a websocket upgrade;
// an Authorization header still works for non-browser clients.
func (h *wsEndpoints) identity(r *http.Request) (authsvc.Identity, error) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		token = ExtractTokenFromHeaders(r)
	}
	if token == "" {
		return authsvc.Identity{}, &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Missing token",
			ErrorLog:   fmt.Errorf("websocket join missing token"),
		}
	}

	identity, err := h.auth.IdentityFromToken(token)
	if err != nil {
		return authsvc.Identity{}, h.serviceError(err)
	}
	return identity, nil
}

func (h *wsEndpoints) ensureRoom(roomID string) {
	if roomID == "" || h.handler == nil {
		return
	}
	h.handler.CreateRoom(roomID)
}

func (h *wsEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*authsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("auth service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case authsvc.ErrorCodeUnauthorized:
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: svcErr.Message, ErrorLog: errorLog}
	case authsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case authsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}
