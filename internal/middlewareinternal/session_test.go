package middlewareinternal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
)

func setup(t *testing.T) (*session.Manager, *service.AuthService) {
	t.Helper()
	sessions := session.NewManager(session.Options{})
	t.Cleanup(sessions.Close)
	auth, err := service.NewAuthService(sessions, "test-secret", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	return sessions, auth
}

func echoSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(sid))
}

func TestSessionMiddlewareIssuesGuestSession(t *testing.T) {
	sessions, auth := setup(t)
	h := SessionMiddleware(auth, sessions)(http.HandlerFunc(echoSession))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
	sid, err := auth.ValidateToken(cookies[0].Value)
	if err != nil || sid != rr.Body.String() {
		t.Fatalf("token sid = %q (%v), handler saw %q", sid, err, rr.Body.String())
	}
	if sessions.Len() != 1 {
		t.Fatalf("sessions = %d", sessions.Len())
	}
}

func TestSessionMiddlewareReusesSession(t *testing.T) {
	sessions, auth := setup(t)
	h := SessionMiddleware(auth, sessions)(http.HandlerFunc(echoSession))

	sid := sessions.Create().ID
	token, err := auth.IssueToken(sid)
	if err != nil {
		t.Fatal(err)
	}

	for _, withCookie := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Body.String() != sid {
			t.Fatalf("cookie=%v: sid = %q, want %q", withCookie, rr.Body.String(), sid)
		}
		if len(rr.Result().Cookies()) != 0 {
			t.Fatalf("cookie=%v: unexpected new cookie", withCookie)
		}
	}
}

func TestSessionMiddlewareReplacesUnknownSession(t *testing.T) {
	sessions, auth := setup(t)
	h := SessionMiddleware(auth, sessions)(http.HandlerFunc(echoSession))

	token, _ := auth.IssueToken("gone")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Body.String() == "gone" {
		t.Fatal("stale session id accepted")
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("replacement cookie not issued")
	}
}

func TestRequireAuth(t *testing.T) {
	sessions, auth := setup(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := SessionMiddleware(auth, sessions)(RequireAuth(sessions)(ok))

	sid := sessions.Create().ID
	token, _ := auth.IssueToken(sid)
	request := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := request(); code != http.StatusUnauthorized {
		t.Fatalf("guest code = %d", code)
	}
	if _, err := sessions.Authenticate(sid, model.User{Name: "Test User", Email: "test@bank.com"}); err != nil {
		t.Fatal(err)
	}
	if code := request(); code != http.StatusOK {
		t.Fatalf("authenticated code = %d", code)
	}
}
