package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heyyrintu/mis-lifelong/internal/config"
)

// Roles. Admins may upload, load and download; users are read-only.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type session struct {
	username string
	role     string
	lastSeen time.Time
}

// sessionManager issues bearer tokens for configured users and expires them
// after the configured idle timeout. Every authenticated request refreshes
// the idle clock.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	users    []config.User
	timeout  time.Duration
}

func newSessionManager(cfg config.AuthConfig) *sessionManager {
	timeout := time.Duration(cfg.SessionTimeoutMinutes) * time.Minute
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &sessionManager{
		sessions: make(map[string]*session),
		users:    cfg.Users,
		timeout:  timeout,
	}
}

// login validates credentials and issues a fresh token. Returns the token and
// role, or ok=false on bad credentials.
func (m *sessionManager) login(username, password string) (token, role string, ok bool) {
	var matched *config.User
	for i := range m.users {
		u := &m.users[i]
		if u.Username == username && u.Password == password {
			matched = u
			break
		}
	}
	if matched == nil {
		return "", "", false
	}

	role = matched.Role
	if role != RoleAdmin {
		role = RoleUser
	}

	token = uuid.New().String()
	m.mu.Lock()
	m.sessions[token] = &session{
		username: username,
		role:     role,
		lastSeen: time.Now(),
	}
	m.mu.Unlock()
	return token, role, true
}

// resolve looks up a token, expiring it when idle too long. A hit refreshes
// the idle clock.
func (m *sessionManager) resolve(token string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Since(s.lastSeen) > m.timeout {
		delete(m.sessions, token)
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

func (m *sessionManager) logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

const (
	ctxUsername = "auth.username"
	ctxRole     = "auth.role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth rejects requests without a live session token.
func (h *Handlers) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			errorResponse(c, codeUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		s, ok := h.sessions.resolve(token)
		if !ok {
			errorResponse(c, codeUnauthorized, "session expired or invalid")
			c.Abort()
			return
		}
		c.Set(ctxUsername, s.username)
		c.Set(ctxRole, s.role)
		c.Next()
	}
}

// requireAdmin gates write and download operations. Must run after
// requireAuth.
func (h *Handlers) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != RoleAdmin {
			errorResponse(c, codeForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
