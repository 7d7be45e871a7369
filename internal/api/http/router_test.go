package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/api/http/handlers"
	"github.com/spec-kit/complaint-desk/internal/auth"
	"github.com/spec-kit/complaint-desk/internal/classifier"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/notification"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/repository/memory"
	"github.com/spec-kit/complaint-desk/internal/service"
)

type modelUp bool

func (m modelUp) Available() bool { return bool(m) }

type testServer struct {
	app    *fiber.App
	store  repository.Store
	tokens *auth.TokenManager
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewAuditService(dispatcher, store.Notes, logger).RegisterHandlers()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, service.AuthDependencies{UserRepo: store.Users})

	complaints := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  store.Complaints,
		DepartmentRepo: store.Departments,
		UserRepo:       store.Users,
		NoteRepo:       store.Notes,
		Classifier: classifier.Func(func(text string) string {
			if strings.Contains(strings.ToLower(text), "bill") {
				return "Billing"
			}
			return "Other"
		}),
		Notifier:   notification.NewLogSink(logger),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	feedback := service.NewFeedbackService(service.FeedbackDependencies{
		FeedbackRepo:  store.Feedback,
		ComplaintRepo: store.Complaints,
		Dispatcher:    dispatcher,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("complaint-desk", "test", modelUp(true), map[string]handlers.Dependency{}),
		Auth:   handlers.NewAuthHandler(authService),
		Complaints: handlers.NewComplaintsHandler(complaints, feedback),
		Departments: handlers.NewDepartmentsHandler(service.NewDepartmentService(service.DepartmentDependencies{
			DepartmentRepo: store.Departments,
			ComplaintRepo:  store.Complaints,
		})),
		Analytics: handlers.NewAnalyticsHandler(service.NewAnalyticsService(service.AnalyticsDependencies{
			ComplaintRepo:  store.Complaints,
			DepartmentRepo: store.Departments,
			FeedbackRepo:   store.Feedback,
		})),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store.Users),
	})
	return &testServer{app: app, store: store, tokens: authService.TokenManager(), auth: authService}
}

// login provisions a user with the given role and returns a bearer token.
func (s *testServer) login(t *testing.T, username string, role domain.Role) (string, int64) {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@desk.test", Role: role, IsActive: true}
	require.NoError(t, s.store.Users.Create(context.Background(), user))
	token, err := s.tokens.GenerateToken(user.ID, role)
	require.NoError(t, err)
	return token.Value, user.ID
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "body has no data object: %v", body)
	return d
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(t, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, _ = s.do(t, fiber.MethodGet, "/metrics", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestReadyFailsWithoutModel(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandler("complaint-desk", "test", modelUp(false), nil)
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodPost, "/auth/register", "", map[string]any{
		"username": "carol", "email": "carol@mail.com", "password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusCreated, status)
	user := data(t, body)["user"].(map[string]any)
	assert.Equal(t, "customer", user["role"])

	status, body = s.do(t, fiber.MethodPost, "/auth/login", "", map[string]any{
		"username": "carol", "password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, data(t, body)["access_token"])

	status, body = s.do(t, fiber.MethodPost, "/auth/login", "", map[string]any{
		"username": "carol", "password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))
}

func TestRegisterRejectsStaffRole(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, fiber.MethodPost, "/auth/register", "", map[string]any{
		"username": "mallory", "email": "m@mail.com", "password": "s3cret-pass", "role": "admin",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	admin, _ := s.login(t, "root", domain.RoleAdmin)
	status, body = s.do(t, fiber.MethodPost, "/users", admin, map[string]any{
		"username": "agent1", "email": "a1@desk.test", "password": "s3cret-pass", "role": "agent",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "agent", data(t, body)["user"].(map[string]any)["role"])
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, fiber.MethodPost, "/auth/register", "", map[string]any{
		"username": "x", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, fiber.MethodGet, "/complaints", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, _ = s.do(t, fiber.MethodGet, "/complaints", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestComplaintLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.login(t, "root", domain.RoleAdmin)
	agent, _ := s.login(t, "agent", domain.RoleAgent)
	customer, customerID := s.login(t, "cust", domain.RoleCustomer)

	status, body := s.do(t, fiber.MethodPost, "/departments", admin, map[string]any{
		"name": "Finance", "email": "finance@corp.test",
	})
	require.Equal(t, fiber.StatusCreated, status)
	deptID := int64(data(t, body)["id"].(float64))

	status, body = s.do(t, fiber.MethodPost, "/complaints", customer, map[string]any{"text": "My bill is wrong"})
	require.Equal(t, fiber.StatusCreated, status)
	created := data(t, body)
	assert.Equal(t, "Billing", created["category"])
	assert.Equal(t, "Pending", created["status"])
	assert.Equal(t, float64(customerID), created["customer_id"])
	id := int64(created["id"].(float64))

	status, body = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/forward", id), agent, map[string]any{"department_id": deptID})
	require.Equal(t, fiber.StatusOK, status)
	forwarded := data(t, body)
	assert.Equal(t, false, forwarded["notified"])
	assert.Equal(t, "Assigned", forwarded["complaint"].(map[string]any)["status"])

	status, body = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/complete", id), agent, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Completed", data(t, body)["complaint"].(map[string]any)["status"])

	status, body = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/complete", id), agent, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(body))

	status, _ = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/feedback", id), customer, map[string]any{"rating": 6})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/feedback", id), customer, map[string]any{"rating": 5, "comments": "quick"})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, float64(5), data(t, body)["rating"])

	status, _ = s.do(t, fiber.MethodPost, fmt.Sprintf("/complaints/%d/feedback", id), customer, map[string]any{"rating": 4})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = s.do(t, fiber.MethodGet, fmt.Sprintf("/complaints/%d/notes", id), agent, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["data"])

	status, body = s.do(t, fiber.MethodDelete, fmt.Sprintf("/departments/%d", deptID), admin, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))
}

func TestCustomersSeeOnlyTheirComplaints(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.login(t, "alice", domain.RoleCustomer)
	bob, _ := s.login(t, "bob", domain.RoleCustomer)
	agent, _ := s.login(t, "agent", domain.RoleAgent)

	_, body := s.do(t, fiber.MethodPost, "/complaints", alice, map[string]any{"text": "Router keeps rebooting"})
	aliceID := int64(data(t, body)["id"].(float64))
	s.do(t, fiber.MethodPost, "/complaints", bob, map[string]any{"text": "Bill doubled"})

	_, body = s.do(t, fiber.MethodGet, "/complaints", alice, nil)
	assert.Len(t, body["data"], 1)

	_, body = s.do(t, fiber.MethodGet, "/complaints", agent, nil)
	assert.Len(t, body["data"], 2)

	status, body := s.do(t, fiber.MethodGet, fmt.Sprintf("/complaints/%d", aliceID), bob, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, _ = s.do(t, fiber.MethodGet, fmt.Sprintf("/complaints/%d", aliceID), alice, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	customer, _ := s.login(t, "cust", domain.RoleCustomer)
	agent, _ := s.login(t, "agent", domain.RoleAgent)
	manager, _ := s.login(t, "boss", domain.RoleManager)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"customer cannot list departments", fiber.MethodGet, "/departments", customer, fiber.StatusForbidden},
		{"agent lists departments", fiber.MethodGet, "/departments", agent, fiber.StatusOK},
		{"agent cannot create departments", fiber.MethodPost, "/departments", agent, fiber.StatusForbidden},
		{"agent cannot run sla sweep", fiber.MethodPost, "/sla/check", agent, fiber.StatusForbidden},
		{"manager runs sla sweep", fiber.MethodPost, "/sla/check", manager, fiber.StatusOK},
		{"manager assigns priorities", fiber.MethodPost, "/priorities/assign", manager, fiber.StatusOK},
		{"customer cannot read analytics", fiber.MethodGet, "/analytics", customer, fiber.StatusForbidden},
		{"manager reads analytics", fiber.MethodGet, "/analytics", manager, fiber.StatusOK},
		{"manager reads kpis", fiber.MethodGet, "/analytics/kpi", manager, fiber.StatusOK},
		{"manager cannot delete complaints", fiber.MethodDelete, "/complaints/1", manager, fiber.StatusForbidden},
		{"customer cannot create users", fiber.MethodPost, "/users", customer, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := s.do(t, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestUpdateComplaintPatch(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.login(t, "root", domain.RoleAdmin)
	customer, _ := s.login(t, "cust", domain.RoleCustomer)

	_, body := s.do(t, fiber.MethodPost, "/complaints", customer, map[string]any{"text": "Something odd"})
	id := int64(data(t, body)["id"].(float64))
	path := fmt.Sprintf("/complaints/%d", id)

	status, body := s.do(t, fiber.MethodPatch, path, admin, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = s.do(t, fiber.MethodPatch, path, admin, map[string]any{"category": "Service"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Service", data(t, body)["complaint"].(map[string]any)["category"])

	status, body = s.do(t, fiber.MethodPatch, path, admin, map[string]any{"status": "Pending"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(body))

	status, _ = s.do(t, fiber.MethodPatch, path, admin, map[string]any{"status": "Escalated"})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, fiber.MethodDelete, path, admin, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = s.do(t, fiber.MethodGet, path, admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFailedCombinedPatchLeavesCategory(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.login(t, "root", domain.RoleAdmin)
	customer, _ := s.login(t, "cust", domain.RoleCustomer)

	_, body := s.do(t, fiber.MethodPost, "/complaints", customer, map[string]any{"text": "Something odd"})
	created := data(t, body)
	id := int64(created["id"].(float64))
	original := created["category"]
	path := fmt.Sprintf("/complaints/%d", id)

	status, body := s.do(t, fiber.MethodPatch, path, admin, map[string]any{"category": "Service", "department_id": 999})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, body = s.do(t, fiber.MethodPatch, path, admin, map[string]any{"category": "Billing", "status": "Completed"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(body))

	status, body = s.do(t, fiber.MethodGet, path, admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, original, data(t, body)["category"])
	assert.Equal(t, "Pending", data(t, body)["status"])
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "agent", domain.RoleAgent)
	status, body := s.do(t, fiber.MethodGet, "/nowhere", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}
