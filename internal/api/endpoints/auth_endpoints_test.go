package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/middleware"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	internaljwt "github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"
)

type memberRepository struct {
	mu      sync.Mutex
	members map[string]model.MemberItem
	byEmail map[string]string
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[string]model.MemberItem),
		byEmail: make(map[string]string),
	}
}

func (m *memberRepository) CreateMember(ctx context.Context, member model.MemberItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.MemberID] = member
	m.byEmail[member.Email] = member.MemberID
	return nil
}

func (m *memberRepository) GetMember(ctx context.Context, memberID string) (model.MemberItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[memberID]
	if !ok {
		return model.MemberItem{}, authsvc.ErrNotFound
	}
	return member, nil
}

func (m *memberRepository) FindMemberByEmail(ctx context.Context, email string) (model.MemberItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	memberID, ok := m.byEmail[email]
	if !ok {
		return model.MemberItem{}, authsvc.ErrNotFound
	}
	member, ok := m.members[memberID]
	if !ok {
		return model.MemberItem{}, authsvc.ErrNotFound
	}
	return member, nil
}

func fixedTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func setupTestJWT(t *testing.T) {
	t.Helper()
	internaljwt.SetRoleSecret(internaljwt.RoleMember, "member-test-secret")
	internaljwt.SetRoleSecret(internaljwt.RoleAdmin, "admin-test-secret")
	internaljwt.SetRoleSecret(internaljwt.RoleTechDirector, "tech-test-secret")

	// The default issuer stores refresh tokens in redis; tests sign access
	// tokens directly and fake the refresh half.
	authsvc.SetTokenIssuer(func(member internaljwt.Member, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
		token, err := internaljwt.CreateToken(member, role, validUntil)
		if err != nil {
			return internaljwt.TokenResponse{}, err
		}
		return internaljwt.TokenResponse{
			AccessToken:  token,
			RefreshToken: "refresh-" + member.Id,
		}, nil
	})
	t.Cleanup(func() {
		authsvc.SetTokenIssuer(nil)
	})
}

func setupAuthHandler(t *testing.T, svc *authsvc.Service) (http.Handler, func()) {
	t.Helper()

	authEndpoints := &authEndpoints{service: svc}

	queueManager := queue.NewRequestQueueManager(10, 1)

	server := api.NewAPIServer(":0", queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/portal/v1/auth/login", server.MakeHTTPHandleFunc(authEndpoints.Login))
	mux.HandleFunc("/api/portal/v1/auth/refresh", server.MakeHTTPHandleFunc(authEndpoints.Refresh))
	mux.HandleFunc("/api/portal/v1/auth/me", server.MakeHTTPHandleFunc(authEndpoints.Me, middleware.ValidateStaffJWT))
	mux.HandleFunc("/api/portal/v1/auth/members", server.MakeHTTPHandleFunc(authEndpoints.Members, middleware.ValidateAdminJWT))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func doJSONRequest[T any](t *testing.T, handler http.Handler, method, target string, body interface{}, headers map[string]string, expectedStatus int) T {
	t.Helper()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d: %s", expectedStatus, rec.Code, rec.Body.String())
	}

	var result T
	if expectedStatus != http.StatusNoContent {
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}

	return result
}

func seedMember(t *testing.T, svc *authsvc.Service, email, name, password, role string) model.MemberItem {
	t.Helper()
	member, err := svc.CreateMember(context.Background(), authsvc.CreateMemberParams{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}

func TestAuthEndpointsEndToEnd(t *testing.T) {
	setupTestJWT(t)
	repo := newMemberRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service)
	defer cleanup()

	seedMember(t, service, "admin@autoassist.dev", "Portal Admin", "Sup3rS3cret!", "Administrator")

	loginPayload := map[string]interface{}{
		"email":    "admin@autoassist.dev",
		"password": "Sup3rS3cret!",
	}

	loginResp := doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/portal/v1/auth/login", loginPayload, nil, http.StatusOK)

	if loginResp.AccessToken == "" {
		t.Fatal("expected access token in login response")
	}
	if loginResp.RefreshToken == "" {
		t.Fatal("expected refresh token in login response")
	}
	if loginResp.Member.Role != "Administrator" {
		t.Fatalf("expected role Administrator, got %s", loginResp.Member.Role)
	}

	adminHeaders := map[string]string{
		"Authorization": "Bearer " + loginResp.AccessToken,
	}

	meResp := doJSONRequest[dto.MeResponse](t, handler, http.MethodGet, "/api/portal/v1/auth/me", nil, adminHeaders, http.StatusOK)

	if meResp.Member.Email != "admin@autoassist.dev" {
		t.Fatalf("expected admin email, got %s", meResp.Member.Email)
	}

	createPayload := map[string]interface{}{
		"email":    "agent@autoassist.dev",
		"name":     "Sam Agent",
		"password": "An0therS3cret!",
	}

	createResp := doJSONRequest[dto.CreateMemberResponse](t, handler, http.MethodPost, "/api/portal/v1/auth/members", createPayload, adminHeaders, http.StatusCreated)

	if !createResp.Success {
		t.Fatal("expected success creating member")
	}
	if createResp.Member.Role != "Agent" {
		t.Fatalf("expected default role Agent, got %s", createResp.Member.Role)
	}

	agentLogin := map[string]interface{}{
		"email":    "agent@autoassist.dev",
		"password": "An0therS3cret!",
	}

	agentResp := doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/portal/v1/auth/login", agentLogin, nil, http.StatusOK)

	if agentResp.Member.Email != "agent@autoassist.dev" {
		t.Fatalf("expected agent email, got %s", agentResp.Member.Email)
	}
}

func TestAuthLoginRejectsBadPassword(t *testing.T) {
	setupTestJWT(t)
	repo := newMemberRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service)
	defer cleanup()

	seedMember(t, service, "agent@autoassist.dev", "Sam Agent", "An0therS3cret!", "")

	payload := map[string]interface{}{
		"email":    "agent@autoassist.dev",
		"password": "wrong-password",
	}

	resp := doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/portal/v1/auth/login", payload, nil, http.StatusUnauthorized)

	if resp.Error == "" {
		t.Fatal("expected error message in response")
	}
}

func TestAuthMembersRejectsNonAdminToken(t *testing.T) {
	setupTestJWT(t)
	repo := newMemberRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service)
	defer cleanup()

	seedMember(t, service, "agent@autoassist.dev", "Sam Agent", "An0therS3cret!", "")

	loginPayload := map[string]interface{}{
		"email":    "agent@autoassist.dev",
		"password": "An0therS3cret!",
	}

	loginResp := doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/portal/v1/auth/login", loginPayload, nil, http.StatusOK)

	createPayload := map[string]interface{}{
		"email":    "other@autoassist.dev",
		"name":     "Other Agent",
		"password": "YetAn0therS3cret!",
	}

	headers := map[string]string{
		"Authorization": "Bearer " + loginResp.AccessToken,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/portal/v1/auth/members", bytes.NewReader(mustMarshal(t, createPayload)))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for agent token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
