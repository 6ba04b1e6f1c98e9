package auth

import (
	"net/http"
	"time"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// sentinelToken is the only valid session value. This is a placeholder
// security model kept for parity with the deployed site: one shared token for
// all admins until the process restarts with different configuration.
const sentinelToken = "admin_authenticated"

const cookieMaxAge = 7 * 24 * time.Hour

// Sessions issues and verifies the admin session token.
type Sessions struct {
	secureCookies bool
}

// NewSessions creates a session helper. secureCookies marks the cookie Secure,
// which should be on outside development.
func NewSessions(secureCookies bool) *Sessions {
	return &Sessions{secureCookies: secureCookies}
}

// Issue returns the session token for a freshly authenticated admin.
func (s *Sessions) Issue() string {
	return sentinelToken
}

// Verify reports whether token is a valid admin session.
func (s *Sessions) Verify(token string) bool {
	return token == sentinelToken
}

// VerifyRequest reports whether r carries a valid admin session cookie.
func (s *Sessions) VerifyRequest(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return s.Verify(c.Value)
}

// SetCookie attaches the session cookie to the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
