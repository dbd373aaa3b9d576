package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	raw, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestManager(opts Options) (*Manager[string], *clock) {
	c := &clock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	m := NewManager(opts, func(token string) string { return "state:" + token })
	m.now = c.Now
	return m, c
}

func TestExpiryPrefersTokenClaim(t *testing.T) {
	issued := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	exp := issued.Add(90 * time.Minute)

	assert.True(t, ExpiryOf(signed(t, exp), 60, issued, time.Hour).Equal(exp))
	assert.Equal(t, issued.Add(time.Minute), ExpiryOf("not-a-jwt", 60, issued, time.Hour))
	assert.Equal(t, issued.Add(time.Hour), ExpiryOf("not-a-jwt", 0, issued, time.Hour))
}

func TestCreateBuildsState(t *testing.T) {
	m, c := newTestManager(Options{Fallback: time.Hour})
	s := m.Create(&models.LoginResponse{AccessToken: "tok", User: models.UserInfo{ID: 1, Name: "Admin"}})

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "state:tok", s.State)
	assert.Equal(t, c.now.Add(time.Hour), s.ExpiresAt)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	m, c := newTestManager(Options{Fallback: time.Hour})
	s := m.Create(&models.LoginResponse{AccessToken: "tok", ExpiresIn: 600})

	c.now = c.now.Add(11 * time.Minute)
	assert.False(t, s.Valid(c.now))
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestIdleSessionIsSwept(t *testing.T) {
	m, c := newTestManager(Options{IdleTTL: 10 * time.Minute, Fallback: 8 * time.Hour})
	idle := m.Create(&models.LoginResponse{AccessToken: "a"})
	active := m.Create(&models.LoginResponse{AccessToken: "b"})

	c.now = c.now.Add(6 * time.Minute)
	_, ok := m.Get(active.ID)
	require.True(t, ok)

	c.now = c.now.Add(6 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	_, ok = m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestDestroyAndEmptyID(t *testing.T) {
	m, _ := newTestManager(Options{})
	s := m.Create(&models.LoginResponse{AccessToken: "tok"})
	m.Destroy(s.ID)

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	_, ok = m.Get("")
	assert.False(t, ok)
	assert.False(t, (*Session[string])(nil).Valid(time.Now()))
}

func TestRunStopsWithContext(t *testing.T) {
	m, _ := newTestManager(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
