package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"
)

type AuthEndpoints interface {
	Login(http.ResponseWriter, *http.Request) error
	Refresh(http.ResponseWriter, *http.Request) error
	Me(http.ResponseWriter, *http.Request) error
	Members(http.ResponseWriter, *http.Request) error
}

type authEndpoints struct {
	service *authsvc.Service
}

func NewAuthEndpoints(db *database.Database) AuthEndpoints {
	return &authEndpoints{
		service: authsvc.New(db),
	}
}

func NewAuthEndpointsWithService(service *authsvc.Service) AuthEndpoints {
	return &authEndpoints{service: service}
}

func (h *authEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *authEndpoints) Refresh(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRefresh,
	})
}

func (h *authEndpoints) Me(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleMe,
	})
}

func (h *authEndpoints) Members(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreateMember,
	})
}

func (h *authEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	result, err := h.service.Login(r.Context(), authsvc.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *authEndpoints) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode refresh request: %w", err),
		}
	}

	accessToken, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AuthResponse{
		AccessToken: accessToken,
	})
}

func (h *authEndpoints) handleMe(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.service.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return h.serviceError(err)
	}

	member, err := h.service.Me(r.Context(), identity)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MeResponse{Member: toMemberResponse(member)})
}

func (h *authEndpoints) handleCreateMember(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create member request: %w", err),
		}
	}

	member, err := h.service.CreateMember(r.Context(), authsvc.CreateMemberParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.CreateMemberResponse{
		Success: true,
		Member:  toMemberResponse(member),
	})
}

func (h *authEndpoints) serviceError(err error) error {
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
	case authsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeUnauthorized:
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case authsvc.ErrorCodeConflict:
		return &HTTPError{
			StatusCode: http.StatusConflict,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   errorLog,
		}
	}
}

func toAuthResponse(result authsvc.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		Member:       toMemberResponse(result.Member),
	}
}

func toMemberResponse(member model.MemberItem) dto.MemberResponse {
	return dto.MemberResponse{
		MemberID:  member.MemberID,
		Email:     member.Email,
		Name:      member.Name,
		Role:      member.Role,
		Status:    member.Status,
		CreatedAt: member.CreatedAt,
	}
}
