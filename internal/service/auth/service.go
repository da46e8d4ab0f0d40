package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	internaljwt "github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

	"github.com/google/uuid"
)

const (
	defaultRole       = "Agent"
	minPasswordLength = 8
)

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh

func SetTokenIssuer(issuer func(internaljwt.Member, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	member, err := s.repo.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "failed to fetch member", err)
	}

	if member.Status == model.MemberStatusDisabled {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "account disabled", nil)
	}

	if !internaljwt.ValidatePassword(member.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	tokens, err := createTokenWithRefresh(internaljwt.Member{
		Id:    member.MemberID,
		Email: member.Email,
	}, roleFor(member.Role), 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		Member: member,
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a refresh token for a fresh access token. The role is
// read off the token itself, so one endpoint serves all three staff roles.
func (s *Service) Refresh(refreshToken string) (string, error) {
	token := strings.TrimSpace(refreshToken)
	if token == "" {
		return "", newError(ErrorCodeValidation, "missing refresh token", nil)
	}

	role, ok := internaljwt.IdentifyRole(token)
	if !ok {
		return "", newError(ErrorCodeUnauthorized, "invalid refresh token", nil)
	}

	accessToken, err := internaljwt.RefreshToken(token, role)
	if err != nil {
		return "", newError(ErrorCodeUnauthorized, "invalid refresh token", err)
	}

	return accessToken, nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (model.MemberItem, error) {
	memberID := strings.TrimSpace(identity.MemberID)
	if memberID == "" {
		return model.MemberItem{}, newError(ErrorCodeUnauthorized, "invalid member identity", nil)
	}

	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.MemberItem{}, newError(ErrorCodeNotFound, "member not found", err)
		}
		return model.MemberItem{}, newError(ErrorCodeInternal, "failed to fetch member", err)
	}

	return member, nil
}

func (s *Service) CreateMember(ctx context.Context, params CreateMemberParams) (model.MemberItem, error) {
	email := normalizeEmail(params.Email)
	name := strings.TrimSpace(params.Name)
	password := strings.TrimSpace(params.Password)
	role := strings.TrimSpace(params.Role)

	if email == "" || name == "" || password == "" {
		return model.MemberItem{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}
	if len(password) < minPasswordLength {
		return model.MemberItem{}, newError(ErrorCodeValidation, "password must be at least 8 characters", nil)
	}
	if role == "" {
		role = defaultRole
	}

	_, err := s.repo.FindMemberByEmail(ctx, email)
	if err == nil {
		return model.MemberItem{}, newError(ErrorCodeConflict, "member with this email already exists", nil)
	}
	if !errors.Is(err, ErrNotFound) {
		return model.MemberItem{}, newError(ErrorCodeInternal, "failed to fetch member", err)
	}

	passwordHash, err := internaljwt.HashPassword(password)
	if err != nil {
		return model.MemberItem{}, newError(ErrorCodeInternal, "failed to prepare member", err)
	}

	member := model.MemberItem{
		MemberID:     uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		Status:       model.MemberStatusActive,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateMember(ctx, member); err != nil {
		return model.MemberItem{}, newError(ErrorCodeInternal, "failed to save member", err)
	}

	return member, nil
}

func (s *Service) IdentityFromAuthorizationHeader(header string) (Identity, error) {
	authHeader := strings.TrimSpace(header)
	if authHeader == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "missing authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return s.IdentityFromToken(token)
}

// IdentityFromToken validates a raw access token. Websocket joins pass the
// token as a query parameter because browsers cannot set headers on a
// websocket handshake.
func (s *Service) IdentityFromToken(token string) (Identity, error) {
	if token == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "empty token", nil)
	}

	role, ok := internaljwt.IdentifyRole(token)
	if !ok {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", nil)
	}

	claims, err := internaljwt.ParseToken(token, role)
	if err != nil {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", err)
	}

	memberID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)

	if memberID == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "token missing identifiers", nil)
	}

	return Identity{
		MemberID: memberID,
		Email:    email,
		Role:     role,
	}, nil
}

func roleFor(role string) internaljwt.Role {
	if model.IsAdminRole(role) {
		return internaljwt.RoleAdmin
	}
	if model.IsTechDirectorRole(role) {
		return internaljwt.RoleTechDirector
	}
	return internaljwt.RoleMember
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
