package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

type recorded struct {
	method string
	path   string
	header http.Header
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()

		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", credentials.Static("tok-123")), rec
}

func TestClient_ListNotifications(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true,"data":[
		{"_id":"n1","title":"New Order","message":"order #1","type":"order","targetUser":"admin","createdAt":"2024-03-10T08:30:00Z","read":false},
		{"_id":"n2","title":"Sale","message":"50% off","type":"info","targetUser":{"_id":"u1"},"createdAt":"2024-03-10T08:31:00Z","read":true}
	]}`)

	records, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "n1", records[0].ID)
	assert.Equal(t, "u1", records[1].TargetUser)
	assert.True(t, records[1].Read)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/notification/admin/list", rec.path)
	assert.Equal(t, "Bearer tok-123", rec.header.Get("Authorization"))
	assert.Equal(t, "tok-123", rec.header.Get("token"))
	assert.NotEmpty(t, rec.header.Get("X-Request-ID"))
}

func TestClient_ListNotifications_NullData(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"success":true,"data":null}`)

	records, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_CreateNotification_SendsNormalizedBody(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true,"message":"created"}`)

	err := c.CreateNotification(context.Background(), notification.Compose{Title: " Sale ", Message: "50% off"})
	require.NoError(t, err)

	assert.Equal(t, "/api/notification/create", rec.path)
	assert.Equal(t, map[string]any{
		"title":      "Sale",
		"message":    "50% off",
		"targetUser": "all",
		"type":       "info",
	}, rec.body)
}

func TestClient_MarkRead(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, c.MarkRead(context.Background(), "n1", false))
	assert.Equal(t, "/api/notification/read", rec.path)
	assert.Equal(t, map[string]any{"id": "n1", "read": false}, rec.body)
}

func TestClient_DeleteMany(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true,"deletedCount":2}`)

	n, err := c.DeleteMany(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "/api/notification/delete-multiple", rec.path)
	assert.Equal(t, []any{"a", "b"}, rec.body["ids"])
}

func TestClient_DeleteAll(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true,"deletedCount":7}`)

	n, err := c.DeleteAll(context.Background(), notification.LaneCreated)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/notification/delete-all", rec.path)
	assert.Equal(t, map[string]any{"type": "created"}, rec.body)
}

func TestClient_ListUsers(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"success":true,"data":[{"_id":"u1","name":"Lan","email":"lan@example.com"}]}`)

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []User{{ID: "u1", Name: "Lan", Email: "lan@example.com"}}, users)
	assert.Equal(t, "/api/user/list", rec.path)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		check    func(t *testing.T, err error)
		wantText string
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"success":false,"message":"jwt expired"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
				assert.True(t, IsAuthError(err))
			},
			wantText: "Please log in again",
		},
		{
			name:   "success false",
			status: http.StatusOK,
			body:   `{"success":false,"message":"Không tìm thấy thông báo"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusOK, apiErr.Status)
			},
			wantText: "Không tìm thấy thông báo",
		},
		{
			name:   "server error without json",
			status: http.StatusBadGateway,
			body:   `bad gateway`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			},
			wantText: "bad gateway",
		},
		{
			name:   "garbage on success status",
			status: http.StatusOK,
			body:   `<html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTransport)
			},
			wantText: "Cannot reach server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, tt.body)

			_, err := c.DeleteMany(context.Background(), []string{"x"})
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.wantText, UserMessage(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL, credentials.Static("tok"))
	_, err := c.ListNotifications(context.Background())

	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, "Cannot reach server", UserMessage(err))
}

func TestClient_NoToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	t.Cleanup(srv.Close)

	c := New(srv.URL, credentials.Static(""))
	_, err := c.ListNotifications(context.Background())

	assert.ErrorIs(t, err, credentials.ErrNoToken)
	assert.True(t, IsAuthError(err))
	assert.False(t, called, "no request is sent without a token")
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "title: is required", UserMessage(&notification.ValidationError{Field: "title", Message: "is required"}))
	assert.Equal(t, "Cannot reach server", UserMessage(context.DeadlineExceeded))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
