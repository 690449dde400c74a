package dashboard

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/internal/users"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
)

// LoginForm renders the sign-in view. Requests that already carry a
// valid session bounce straight to their destination.
func (m *Module) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := m.safeNext(r.URL.Query().Get("next"))

	if _, ok := m.principal(r); ok {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	m.rend.HTML(w, http.StatusOK, "login.html", "Sign in", loginPage{
		Next: next,
	})
}

// Login verifies posted credentials, sets the session cookie, and
// redirects to the requested destination. Failures re-render the form
// without echoing which part of the credentials was wrong.
func (m *Module) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		m.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	next := m.safeNext(r.PostFormValue("next"))
	cmd := users.LoginCommand{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	result, err := m.users.Login(r.Context(), cmd)
	if err != nil {
		if Negotiate(r) {
			handlers.RespondError(w, m.logger, users.MapHTTPStatus(err), err)
			return
		}
		m.rend.HTML(w, http.StatusUnauthorized, "login.html", "Sign in", loginPage{
			Next:  next,
			Email: cmd.Email,
			Error: "Invalid email or password.",
		})
		return
	}

	m.setSessionCookie(w, result.Token)
	m.logger.Info("dashboard sign-in", "user", result.User.Username)

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout clears the session cookie and returns to the sign-in view.
func (m *Module) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, m.rend.BasePath()+"/login", http.StatusSeeOther)
}

// protect wraps a handler with authentication and, when codename is
// non-empty, a permission check. Browser requests without a session
// redirect to the sign-in view with a next parameter; negotiated JSON
// requests get API-style status responses.
func (m *Module) protect(codename string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := m.principal(r)
		if !ok {
			if Negotiate(r) {
				handlers.RespondError(w, m.logger, http.StatusUnauthorized, auth.ErrAuthRequired)
				return
			}
			login := m.rend.BasePath() + "/login?" + url.Values{
				"next": {m.rend.BasePath() + r.URL.Path},
			}.Encode()
			http.Redirect(w, r, login, http.StatusSeeOther)
			return
		}

		r = r.WithContext(auth.WithPrincipal(r.Context(), principal))

		if codename != "" && !principal.Can(codename) {
			m.rend.Fail(w, r, http.StatusForbidden, auth.ErrPermissionDenied)
			return
		}

		next(w, r)
	}
}

// principal resolves the request identity from the session cookie or a
// bearer token.
func (m *Module) principal(r *http.Request) (*auth.Principal, bool) {
	var raw string
	if c, err := r.Cookie(m.cookieName); err == nil {
		raw = c.Value
	}
	if raw == "" {
		raw = middleware.BearerToken(r)
	}
	if raw == "" {
		return nil, false
	}

	principal, err := m.tokens.Verify(raw)
	if err != nil {
		return nil, false
	}
	return principal, true
}

// safeNext keeps redirects on this host: only rooted paths pass, and
// scheme-relative ones fall back to the dashboard root.
func (m *Module) safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return m.rend.BasePath() + "/"
}

func (m *Module) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.ttl),
	})
}
