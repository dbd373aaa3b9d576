package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
)

func TestListAcceptsBareArrayAndEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/buildings":
			_, _ = io.WriteString(w, `[{"id":1,"name":"Main","code":"M","floor":2}]`)
		case "/api/courses":
			_, _ = io.WriteString(w, `{"data":[{"id":4,"name":"Math","code":"MA"}]}`)
		case "/api/users":
			_, _ = io.WriteString(w, `{"data":null}`)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"})
	ctx := context.Background()

	var buildings []models.Building
	require.NoError(t, c.List(ctx, "/api/buildings", &buildings))
	require.Len(t, buildings, 1)
	assert.Equal(t, "Main", buildings[0].Name)

	var courses []models.Course
	require.NoError(t, c.List(ctx, "/api/courses", &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, int64(4), courses[0].ID)

	var users []models.User
	require.NoError(t, c.List(ctx, "/api/users", &users))
	assert.Empty(t, users)
}

func TestWithTokenSendsBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	base := New(Config{BaseURL: srv.URL})
	require.NoError(t, base.WithToken("abc").Delete(context.Background(), "/api/rooms/1"))
	assert.Equal(t, "Bearer abc", got)

	require.NoError(t, base.Delete(context.Background(), "/api/rooms/1"))
	assert.Empty(t, got, "the base client stays anonymous")
}

func TestErrorsCollapseToRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/private":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"code":"UNAUTHORIZED"}}`)
		default:
			w.WriteHeader(http.StatusConflict)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	err := c.Post(ctx, "/api/rooms", map[string]string{"name": "A"}, nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)

	err = c.GetJSON(ctx, "/api/private", nil, &struct{}{})
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, ErrUnauthorized)

	srv.Close()
	err = c.Delete(ctx, "/api/rooms/1")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestLoginAndPatchPayload(t *testing.T) {
	var patched map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
			var req models.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"data":{"access_token":"tok","expires_in":60,"user":{"id":1,"name":"Admin","role":"admin"}}}`)
		case r.Method == http.MethodPatch:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_ = json.NewDecoder(r.Body).Decode(&patched)
			_, _ = io.WriteString(w, `{"data":{}}`)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	res, err := c.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, models.RoleAdmin, res.User.Role)

	_, err = c.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, c.Patch(context.Background(), "/api/courses/2", map[string]string{"name": "Physics"}, nil))
	assert.Equal(t, "Physics", patched["name"])
}

func TestDownloadKeepsFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pdf", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="timetable-user-3.pdf"`)
		_, _ = io.WriteString(w, "%PDF")
	}))
	defer srv.Close()

	d, err := New(Config{BaseURL: srv.URL}).Download(context.Background(), "/api/users/3/timetable/export", map[string][]string{"format": {"pdf"}})
	require.NoError(t, err)
	assert.Equal(t, "timetable-user-3.pdf", d.Filename)
	assert.Equal(t, "application/pdf", d.ContentType)
	assert.Equal(t, "%PDF", string(d.Body))
}

type recordedCall struct {
	method string
	status int
}

type recordingObserver struct {
	calls []recordedCall
}

func (r *recordingObserver) ObserveUpstream(method string, status int, _ time.Duration) {
	r.calls = append(r.calls, recordedCall{method: method, status: status})
}

func TestObserverSeesEveryCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(Config{BaseURL: srv.URL, Metrics: obs})
	ctx := context.Background()

	var rooms []models.Room
	require.NoError(t, c.List(ctx, "/api/rooms", &rooms))
	require.Error(t, c.Delete(ctx, "/api/rooms/3"))

	require.Len(t, obs.calls, 2)
	assert.Equal(t, recordedCall{method: http.MethodGet, status: http.StatusOK}, obs.calls[0])
	assert.Equal(t, recordedCall{method: http.MethodDelete, status: http.StatusNotFound}, obs.calls[1])
}
