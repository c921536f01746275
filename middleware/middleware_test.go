package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"venus-recipe/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(a *Auth, roles ...models.UserRole) *gin.Engine {
	router := gin.New()
	router.Use(a.Required())
	if len(roles) > 0 {
		router.Use(RoleRequired(roles...))
	}
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	return router
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuth([]byte("test-secret"))
	token, err := a.GenerateToken(&models.User{ID: 7, Email: "cook@venus.test", Role: models.RoleStaff})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != models.RoleStaff {
		t.Errorf("claims = %+v", claims)
	}

	other := NewAuth([]byte("another-secret"))
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestRequired_MissingHeader(t *testing.T) {
	w := serve(newRouter(NewAuth([]byte("s"))), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRequired_InvalidFormat(t *testing.T) {
	w := serve(newRouter(NewAuth([]byte("s"))), "Token abc")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRequired_InvalidToken(t *testing.T) {
	w := serve(newRouter(NewAuth([]byte("s"))), "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	a := NewAuth([]byte("s"))
	staffToken, _ := a.GenerateToken(&models.User{ID: 1, Email: "staff@venus.test", Role: models.RoleStaff})
	adminToken, _ := a.GenerateToken(&models.User{ID: 2, Email: "admin@venus.test", Role: models.RoleAdmin})

	adminOnly := newRouter(a, models.RoleAdmin)
	if w := serve(adminOnly, "Bearer "+staffToken); w.Code != http.StatusForbidden {
		t.Errorf("staff on admin route: expected %d, got %d", http.StatusForbidden, w.Code)
	}
	if w := serve(adminOnly, "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: expected %d, got %d", http.StatusOK, w.Code)
	}

	staffRoute := newRouter(a, models.RoleStaff, models.RoleAdmin)
	if w := serve(staffRoute, "Bearer "+staffToken); w.Code != http.StatusOK {
		t.Errorf("staff on staff route: expected %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("request id not propagated: body=%q header=%q", w.Body.String(), w.Header().Get(RequestIDHeader))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	if w.Body.Len() == 0 {
		t.Error("expected a generated request id")
	}
}
