package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
)

const (
	sessionKey = "console.session"
	sessionID  = "sid"
)

func (s *Server) current(c *gin.Context) (*Session, bool) {
	id, ok := sessions.Default(c).Get(sessionID).(string)
	if !ok || id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

// requireSession redirects to /login unless the cookie names a live session.
// The session stays locked until the request is done.
func (s *Server) requireSession(c *gin.Context) {
	sess, ok := s.current(c)
	if !ok || !sess.Valid(time.Now()) {
		s.clearCookie(c)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	sess.Lock()
	defer sess.Unlock()
	c.Set(sessionKey, sess)
	c.Next()
}

func sessionOf(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}

func (s *Server) setCookie(c *gin.Context, sess *Session) {
	store := sessions.Default(c)
	store.Options(s.cookieOptions(int(time.Until(sess.ExpiresAt).Seconds())))
	store.Set(sessionID, sess.ID)
	if err := store.Save(); err != nil {
		s.logger.Error("save console cookie", zap.Error(err))
	}
}

func (s *Server) clearCookie(c *gin.Context) {
	store := sessions.Default(c)
	store.Clear()
	store.Options(s.cookieOptions(-1))
	if err := store.Save(); err != nil {
		s.logger.Error("clear console cookie", zap.Error(err))
	}
}

func (s *Server) cookieOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// unauthorized ends the session when the API rejected its token. It reports
// whether the response was already written.
func (s *Server) unauthorized(c *gin.Context, sess *Session, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	s.logger.Info("api rejected console token", zap.Int64("user_id", sess.User.ID))
	s.sessions.Destroy(sess.ID)
	s.clearCookie(c)
	c.Redirect(http.StatusFound, "/login")
	return true
}

func (s *Server) loginForm(c *gin.Context) {
	if _, ok := s.current(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.render(c, nil, "login.html", "Login", nil, nil)
}

func (s *Server) login(c *gin.Context) {
	if _, ok := s.current(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		s.renderLoginError(c, "Email and password are required")
		return
	}

	resp, err := s.api.Login(c.Request.Context(), email, password)
	if err != nil {
		s.logger.Warn("console login failed", zap.String("email", email), zap.Error(err))
		msg := "Login failed"
		if errors.Is(err, client.ErrUnauthorized) {
			msg = "Invalid email or password"
		}
		s.renderLoginError(c, msg)
		return
	}

	sess := s.sessions.Create(resp)
	s.setCookie(c, sess)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) renderLoginError(c *gin.Context, msg string) {
	c.HTML(http.StatusUnauthorized, "login.html", view{Title: "Login", Error: msg, Page: gin.H{"Email": c.PostForm("email")}})
}

func (s *Server) logoutConfirm(c *gin.Context) {
	s.render(c, sessionOf(c), "logout.html", "Logout", nil, nil)
}

// logout drops the session and with it every cached page and the token.
func (s *Server) logout(c *gin.Context) {
	sess := sessionOf(c)
	s.sessions.Destroy(sess.ID)
	s.clearCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) toggleSidebar(c *gin.Context) {
	sess := sessionOf(c)
	sess.SidebarCollapsed = !sess.SidebarCollapsed
	c.Redirect(http.StatusFound, localPath(c.PostForm("return"), "/"))
}

func (s *Server) notFound(c *gin.Context) {
	if _, ok := s.current(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
