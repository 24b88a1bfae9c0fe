package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/projectguardian/rescuehub/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userName     = "user_name"
	userLoginKey = "user_login"
	userRole     = "user_role"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID      string
	Name    string
	LoginID string
	Role    string
}

// Identity converts the session user back into the identity shape the auth
// service issued at login.
func (u *SessionUser) Identity() models.Identity {
	return models.Identity{ID: u.ID, FullName: u.Name, Role: u.Role}
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser returns a request carrying the given user in its context,
// exactly as LoadSessionUser would for a signed-in request. Test helper.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the session middleware. The
// identity lives entirely in the signed cookie; there is no server-side
// session record, so clearing the cookie ends the session.
type SessionManager struct {
	store       *sessions.CookieStore
	sessionName string
	log         *zap.Logger
}

// NewSessionManager builds the cookie store. An empty session key gets a
// random one, which means sessions reset on every restart; that is only
// acceptable in dev, so it logs a warning. The `secure` flag controls whether
// cookies are marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, sessionName, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionName == "" {
		return nil, fmt.Errorf("session name is empty")
	}

	key := []byte(sessionKey)
	switch {
	case len(key) == 0:
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("session key is empty; generated a random key (sessions reset on restart)")
	case len(key) < 32:
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}

	// SameSite handling: in prod with Secure cookies, we use None
	// so cookies can be sent in cross-site contexts. In dev, Lax is fine.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", sessionName),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, sessionName: sessionName, log: logger}, nil
}

// Store exposes the underlying cookie store; logout needs its options to
// build a matching deletion cookie.
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// GetSession returns the request's session, creating a fresh one if absent.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.sessionName)
}

// Establish records the authenticated identity in the session cookie.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, ident models.Identity, loginID string) error {
	session, err := sm.GetSession(r)
	if err != nil {
		// A stale or corrupted cookie decodes with an error but still yields
		// a fresh session; continue with that.
		sm.log.Warn("session decode failed during login", zap.Error(err))
	}

	session.Values[isAuthKey] = true
	session.Values[userIDKey] = ident.ID
	session.Values[userName] = ident.FullName
	session.Values[userLoginKey] = loginID
	session.Values[userRole] = ident.Role

	return session.Save(r, w)
}

// Clear expires the session cookie, ending the session.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during logout", zap.Error(err))
	}

	// The deletion cookie must match the original store settings or the
	// browser keeps the old one.
	if opts := sm.store.Options; opts != nil {
		session.Options.Domain = opts.Domain
		session.Options.Path = opts.Path
		session.Options.Secure = opts.Secure
		session.Options.HttpOnly = opts.HttpOnly
		session.Options.SameSite = opts.SameSite
	}
	session.Options.MaxAge = -1

	return session.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context if they are logged in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.sessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:      getString(sess, userIDKey),
				Name:    getString(sess, userName),
				LoginID: getString(sess, userLoginKey),
				Role:    getString(sess, userRole),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context (set by LoadSessionUser). If not authorized, it redirects to HTML
// pages (or sets HX-Redirect) instead of writing a blank error.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)

			// 1) Not signed in → 401 semantics
			if !ok {
				redirectToLogin(w, r)
				return
			}

			// 2) Signed in but wrong role → 403 semantics
			if _, has := set[strings.ToLower(u.Role)]; !has {
				// HTMX: redirect (so the full page swaps)
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}

				// HTML: redirect to a friendly page
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}

				// Non-HTML (API): keep the status code
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			// Authorized → carry on
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Browser/HTML: go to login and preserve return
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	// Non-HTML (API) callers: plain 401
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
