package web

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// requireLogin redirects unauthenticated requests to the login page.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := s.sessions.Get(r, sessionName)
		if _, ok := session.Values["user_id"].(int64); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", &viewData{Title: "Login"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := strings.TrimSpace(r.PostFormValue("password"))
	if username == "" || password == "" {
		s.flash(w, r, "Enter a username and password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.store.UserByUsername(r.Context(), username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.flash(w, r, "Invalid login credentials.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, _ := s.sessions.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("User logged in", zap.String("username", username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessions.Get(r, sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	_ = session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// flash queues a one-shot banner message for the next rendered page.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := s.sessions.Get(r, sessionName)
	session.AddFlash(message)
	_ = session.Save(r, w)
}

// takeFlashes drains queued flash messages.
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.sessions.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save(r, w)
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
