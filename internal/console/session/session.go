// Package session keeps console logins server side. The browser only holds
// an opaque id in a cookie.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
)

// Session is one operator login plus the page state S built for it.
// Handlers hold Lock for the whole request.
type Session[S any] struct {
	ID        string
	Token     string
	User      models.UserInfo
	IssuedAt  time.Time
	ExpiresAt time.Time
	LastSeen  time.Time

	SidebarCollapsed bool
	State            S

	mu sync.Mutex
}

// Valid reports whether the session still carries a usable token at now.
func (s *Session[S]) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

func (s *Session[S]) Lock()   { s.mu.Lock() }
func (s *Session[S]) Unlock() { s.mu.Unlock() }

type Options struct {
	// IdleTTL evicts sessions not seen for this long. Zero disables it.
	IdleTTL time.Duration
	// Fallback is the lifetime used when neither the token nor the login
	// response states one.
	Fallback time.Duration
	Logger   *zap.Logger
}

// Manager owns all live sessions of the console process.
type Manager[S any] struct {
	mu       sync.Mutex
	sessions map[string]*Session[S]
	idleTTL  time.Duration
	fallback time.Duration
	newState func(token string) S
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager builds a manager; newState creates the page state of a fresh login.
func NewManager[S any](opts Options, newState func(token string) S) *Manager[S] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Fallback <= 0 {
		opts.Fallback = 8 * time.Hour
	}
	return &Manager[S]{
		sessions: make(map[string]*Session[S]),
		idleTTL:  opts.IdleTTL,
		fallback: opts.Fallback,
		newState: newState,
		now:      time.Now,
		logger:   opts.Logger,
	}
}

// Create registers the session of a successful login.
func (m *Manager[S]) Create(login *models.LoginResponse) *Session[S] {
	now := m.now()
	s := &Session[S]{
		ID:        uuid.NewString(),
		Token:     login.AccessToken,
		User:      login.User,
		IssuedAt:  now,
		ExpiresAt: ExpiryOf(login.AccessToken, login.ExpiresIn, now, m.fallback),
		LastSeen:  now,
	}
	if m.newState != nil {
		s.State = m.newState(login.AccessToken)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("console session created",
		zap.Int64("user_id", s.User.ID),
		zap.Time("expires_at", s.ExpiresAt),
	)
	return s
}

// ExpiryOf prefers the exp claim of the token, then expires_in seconds, then
// fallback. The token signature is not checked here; the API does that.
func ExpiryOf(token string, expiresIn int64, issued time.Time, fallback time.Duration) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if expiresIn > 0 {
		return issued.Add(time.Duration(expiresIn) * time.Second)
	}
	return issued.Add(fallback)
}

// Get returns a live session and marks it seen. Expired or idle sessions are
// removed and reported as missing.
func (m *Manager[S]) Get(id string) (*Session[S], bool) {
	if id == "" {
		return nil, false
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.expired(s, now) {
		delete(m.sessions, id)
		return nil, false
	}
	s.LastSeen = now
	return s, true
}

// Destroy forgets the session and everything cached in its state.
func (m *Manager[S]) Destroy(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.logger.Info("console session destroyed", zap.Int64("user_id", s.User.ID))
	}
}

func (m *Manager[S]) expired(s *Session[S], now time.Time) bool {
	if !s.Valid(now) {
		return true
	}
	return m.idleTTL > 0 && now.Sub(s.LastSeen) > m.idleTTL
}

// Sweep drops expired and idle sessions and returns how many were removed.
func (m *Manager[S]) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager[S]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("console sessions swept", zap.Int("removed", n))
			}
		}
	}
}

func (m *Manager[S]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
