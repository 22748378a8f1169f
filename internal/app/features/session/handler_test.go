package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/pmhub/internal/app/features/session"
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/dalemusser/pmhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *auth.Manager {
	t.Helper()
	am, err := auth.NewManager("jwt-secret-for-tests-jwt-secret-for-tests", "session-key-for-tests-session-key", "pmhub-test", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return am
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pmhub-test" {
			return c
		}
	}
	return nil
}

func TestStart_RequiresIdentity(t *testing.T) {
	am := newTestManager(t)
	h := session.Routes(session.NewHandler(am, nil, zap.NewNop()), am)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestStart_BearerTokenBecomesCookieSession(t *testing.T) {
	am := newTestManager(t)
	router := am.LoadUser(session.Routes(session.NewHandler(am, nil, zap.NewNop()), am))

	user := testutil.ManagerUser()
	tok, err := am.IssueToken(auth.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	c := sessionCookie(rec)
	if c == nil || !c.HttpOnly {
		t.Fatalf("session cookie = %+v", c)
	}

	// The cookie alone now identifies the caller.
	var seen *auth.SessionUser
	probe := am.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
	}))
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(c)
	probe.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || seen.ID != user.ID || seen.Role != "manager" {
		t.Errorf("cookie identity = %+v", seen)
	}
}

func TestEnd_ClearsCookie(t *testing.T) {
	am := newTestManager(t)
	h := session.Routes(session.NewHandler(am, nil, zap.NewNop()), am)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, testutil.NewAuthenticatedRequest("DELETE", "/", testutil.DeveloperUser()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	c := sessionCookie(rec)
	if c == nil || c.MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", c)
	}
}
