package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
)

// SessionCookie is the cookie that carries the session token.
const SessionCookie = "hms_session"

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 24 * time.Hour

type session struct {
	user    string
	created time.Time
}

// SessionStore holds active sessions in memory. Sessions do not survive
// a restart; users log in again.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// Create registers a new session for the user and returns its token.
func (s *SessionStore) Create(user string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{user: user, created: s.now()}
	s.mu.Unlock()
	return token
}

// Destroy removes a session. Unknown tokens are a no-op.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Valid reports whether the token belongs to an unexpired session.
// Expired sessions are pruned on sight.
func (s *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if s.now().Sub(sess.created) > s.ttl {
		s.Destroy(token)
		return false
	}
	return true
}

// RequireSession rejects requests that lack a valid session cookie.
func RequireSession(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || !store.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error(dto.MsgUnauthorized))
			return
		}
		c.Next()
	}
}
