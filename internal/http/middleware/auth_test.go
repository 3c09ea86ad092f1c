package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/talent-analytics-backend/internal/platform/ctxutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const testSecret = "test-secret"

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), testSecret)
	r := gin.New()
	r.Use(am.RequireAuth())
	if len(roles) > 0 {
		r.Use(RequireRole(roles...))
	}
	r.GET("/whoami", func(c *gin.Context) {
		id := ctxutil.GetIdentity(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"role": id.Role, "employeeId": id.EmployeeID, "sub": id.Subject})
	})
	return r
}

func mustToken(t *testing.T, secret string, id ctxutil.Identity, ttl time.Duration) string {
	t.Helper()
	tok, err := IssueToken(secret, id, ttl)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	admin := ctxutil.Identity{Subject: "u1", Role: ctxutil.RoleHRAdmin}

	t.Run("valid token sets identity", func(t *testing.T) {
		emp := ctxutil.Identity{Subject: "u2", Role: ctxutil.RoleEmployee, EmployeeID: "E7"}
		rec := doGet(newAuthRouter(), mustToken(t, testSecret, emp, time.Hour))
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["role"] != ctxutil.RoleEmployee || body["employeeId"] != "E7" || body["sub"] != "u2" {
			t.Fatalf("identity=%v", body)
		}
	})

	cases := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", mustToken(t, "other-secret", admin, time.Hour)},
		{"expired", mustToken(t, testSecret, admin, -time.Minute)},
		{"unknown role", mustToken(t, testSecret, ctxutil.Identity{Subject: "u3", Role: "ROOT"}, time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(newAuthRouter(), tc.token)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d want 401", rec.Code)
			}
		})
	}

	t.Run("non-HS256 rejected", func(t *testing.T) {
		claims := JWTClaims{Role: ctxutil.RoleHRAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if rec := doGet(newAuthRouter(), tok); rec.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{ctxutil.RoleHRAdmin, http.StatusOK},
		{ctxutil.RoleManager, http.StatusOK},
		{ctxutil.RoleEmployee, http.StatusForbidden},
	}
	r := newAuthRouter(ctxutil.RoleHRAdmin, ctxutil.RoleManager)
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			tok := mustToken(t, testSecret, ctxutil.Identity{Subject: "u", Role: tc.role, EmployeeID: "E1"}, time.Hour)
			if rec := doGet(r, tok); rec.Code != tc.want {
				t.Fatalf("status=%d want %d", rec.Code, tc.want)
			}
		})
	}
}
