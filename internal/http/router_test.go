package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	httpH "github.com/yungbote/talent-analytics-backend/internal/http/handlers"
	httpMW "github.com/yungbote/talent-analytics-backend/internal/http/middleware"
	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/ctxutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const routerSecret = "router-secret"

type stubEmployees struct{}

func (stubEmployees) List(context.Context, repos.EmployeeFilter) ([]*types.Employee, error) {
	return []*types.Employee{{EmployeeID: "E1"}}, nil
}

func (stubEmployees) Get(_ context.Context, id string) (*types.Employee, error) {
	if id == "missing" {
		return nil, apierr.NotFound("Employee not found")
	}
	return &types.Employee{EmployeeID: id, Name: "Ada"}, nil
}

func (stubEmployees) Create(_ context.Context, emp *types.Employee) (*types.Employee, error) {
	return emp, nil
}

func (stubEmployees) Update(_ context.Context, id string, _ json.RawMessage) (*types.Employee, error) {
	return &types.Employee{EmployeeID: id}, nil
}

type stubManagers struct{}

func (stubManagers) GetAssessment(_ context.Context, id string, _ bool) (*types.ManagerAssessment, error) {
	if id == "solo" {
		return nil, apierr.NoDirectReports("This employee has no direct reports.")
	}
	return &types.ManagerAssessment{ManagerID: id, OverallScore: 72}, nil
}

func (stubManagers) AssessmentHistory(context.Context, string) ([]*types.ManagerAssessment, error) {
	return []*types.ManagerAssessment{}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{
		Log:             logger.Nop(),
		Metrics:         observability.New(),
		AuthMiddleware:  httpMW.NewAuthMiddleware(logger.Nop(), routerSecret),
		EmployeeHandler: httpH.NewEmployeeHandler(stubEmployees{}),
		ManagerHandler:  httpH.NewManagerHandler(stubManagers{}),
		HealthHandler:   httpH.NewHealthHandler(nil),
	})
}

func call(t *testing.T, r *gin.Engine, method, path string, id *ctxutil.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if id != nil {
		tok, err := httpMW.IssueToken(routerSecret, *id, time.Hour)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterAccessControl(t *testing.T) {
	r := newTestRouter()
	admin := &ctxutil.Identity{Subject: "a", Role: ctxutil.RoleHRAdmin}
	self := &ctxutil.Identity{Subject: "e", Role: ctxutil.RoleEmployee, EmployeeID: "E1"}

	cases := []struct {
		name   string
		method string
		path   string
		id     *ctxutil.Identity
		want   int
	}{
		{"health is public", http.MethodGet, "/healthcheck", nil, http.StatusOK},
		{"metrics is public", http.MethodGet, "/metrics", nil, http.StatusOK},
		{"api requires token", http.MethodGet, "/api/employees", nil, http.StatusUnauthorized},
		{"admin lists employees", http.MethodGet, "/api/employees", admin, http.StatusOK},
		{"employee cannot list", http.MethodGet, "/api/employees", self, http.StatusForbidden},
		{"employee reads self", http.MethodGet, "/api/employees/E1", self, http.StatusOK},
		{"employee cannot read others", http.MethodGet, "/api/employees/E2", self, http.StatusForbidden},
		{"employee cannot create", http.MethodPost, "/api/employees", self, http.StatusForbidden},
		{"missing employee", http.MethodGet, "/api/employees/missing", admin, http.StatusNotFound},
		{"manager assessment", http.MethodGet, "/api/managers/M1/assessment", self, http.StatusOK},
		{"no direct reports", http.MethodGet, "/api/managers/solo/assessment?forceRefresh=true", admin, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(t, r, tc.method, tc.path, tc.id)
			if rec.Code != tc.want {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	rec := call(t, r, http.MethodGet, "/api/managers/solo/assessment", &ctxutil.Identity{Subject: "a", Role: ctxutil.RoleHRAdmin})

	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "no_direct_reports" || env.Error.Message != "This employee has no direct reports." {
		t.Fatalf("envelope=%+v", env)
	}
	if rec.Header().Get("X-Request-Id") == "" || rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace headers missing: %v", rec.Header())
	}
}
