package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
	"github.com/minhquan-ng/auth-capstone-api/internal/token"
	"github.com/minhquan-ng/auth-capstone-api/internal/util"
)

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour, testRefreshTTL)
	user := &domain.User{ID: uuid.New(), FullName: "Test User", Email: "test@example.com"}
	access, err := tokens.Access(token.Payload{UserID: user.ID, FullName: user.FullName, Email: user.Email})
	if err != nil {
		t.Fatalf("Access returned error: %v", err)
	}

	newProtected := func(users *stubUserRepo) *echo.Echo {
		e, auth := newTestServer(users, nil, nil)
		e.GET("/me", func(c echo.Context) error {
			current, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusInternalServerError, util.Message("no user in context"))
			}
			return c.JSON(http.StatusOK, current)
		}, RequireAuth(auth))
		return e
	}

	do := func(e *echo.Echo, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		e := newProtected(&stubUserRepo{byID: user})
		rec := do(e, "")
		if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Access token not found") {
			t.Fatalf("expected 401 missing token, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		e := newProtected(&stubUserRepo{byID: user})
		rec := do(e, "garbage")
		if rec.Code != http.StatusForbidden || !strings.Contains(rec.Body.String(), "Invalid access token") {
			t.Fatalf("expected 403 invalid token, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newProtected(&stubUserRepo{})
		rec := do(e, access)
		if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Unauthorized") {
			t.Fatalf("expected 401 unknown user, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("token taken raw without bearer prefix", func(t *testing.T) {
		e := newProtected(&stubUserRepo{byID: user})
		rec := do(e, "Bearer "+access)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected prefixed header to be rejected, got %d", rec.Code)
		}
	})

	t.Run("success injects user into context", func(t *testing.T) {
		e := newProtected(&stubUserRepo{byID: user})
		rec := do(e, access)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), user.Email) {
			t.Fatalf("expected current user in response: %s", rec.Body.String())
		}
		lowered := strings.ToLower(rec.Body.String())
		if strings.Contains(lowered, "pass") || strings.Contains(lowered, "refresh") {
			t.Fatalf("serialized user must not expose secrets: %s", rec.Body.String())
		}
	})
}
