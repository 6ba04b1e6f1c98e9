package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifyIssuedToken(t *testing.T) {
	s := NewSessions(false)
	if !s.Verify(s.Issue()) {
		t.Error("issued token should verify")
	}
}

func TestVerifyRejectsOtherTokens(t *testing.T) {
	s := NewSessions(false)
	for _, tok := range []string{"", "admin", "ADMIN_AUTHENTICATED", "admin_authenticated ", "bearer xyz"} {
		if s.Verify(tok) {
			t.Errorf("token %q should not verify", tok)
		}
	}
}

func TestVerifyRequest(t *testing.T) {
	s := NewSessions(false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if s.VerifyRequest(r) {
		t.Error("request without cookie should not verify")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: s.Issue()})
	if !s.VerifyRequest(r) {
		t.Error("request with issued cookie should verify")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	if s.VerifyRequest(r) {
		t.Error("request with forged cookie should not verify")
	}
}

func TestCookieAttributes(t *testing.T) {
	s := NewSessions(true)
	w := httptest.NewRecorder()
	s.SetCookie(w, s.Issue())

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("cookie name = %q", c.Name)
	}
	if !c.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie should be Secure")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("cookie should be SameSite=Lax")
	}
	if c.MaxAge != 7*24*3600 {
		t.Errorf("cookie max age = %d, want 7 days", c.MaxAge)
	}

	w = httptest.NewRecorder()
	s.ClearCookie(w)
	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Error("ClearCookie should expire the cookie")
	}
}
