package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeData(w, http.StatusOK, []Note{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")

	_, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		writeData(w, http.StatusOK, map[string]interface{}{
			"access_token": "fresh-token",
			"user":         map[string]interface{}{"id": 1, "name": "Alice", "email": "alice@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "alice@example.com", "password")
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", resp.AccessToken)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "fresh-token", c.Token())
}

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Note not found")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetNote(context.Background(), "missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Note not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestSessionCreatePrependsServerVersion(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notes":
			writeData(w, http.StatusOK, []Note{{ID: "old", Title: "Existing"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/notes":
			writeData(w, http.StatusCreated, Note{
				ID: "new", Title: "Fresh", Content: "body",
				Tags: []string{}, Color: "#ffffff",
				CreatedAt: now, UpdatedAt: now,
			})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
		}
	}))
	defer srv.Close()

	s := NewSession(New(srv.URL))
	require.NoError(t, s.Refresh(context.Background()))
	require.Equal(t, 1, s.Store().Len())

	note, err := s.Create(context.Background(), &CreateNoteRequest{Title: "Fresh", Content: "body"})
	require.NoError(t, err)

	// Snapshot reflects the stored version, defaults included
	assert.Equal(t, "#ffffff", note.Color)
	assert.Equal(t, []string{"new", "old"}, idsOf(s.Store().Notes()))
}

func TestSessionTogglePinSendsOnlyPinFlag(t *testing.T) {
	var updateBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notes":
			writeData(w, http.StatusOK, []Note{{ID: "n1", Title: "Pin me", IsPinned: false}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/notes/n1":
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &updateBody))
			writeData(w, http.StatusOK, Note{ID: "n1", Title: "Pin me", IsPinned: true})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
		}
	}))
	defer srv.Close()

	s := NewSession(New(srv.URL))
	require.NoError(t, s.Refresh(context.Background()))

	note, err := s.TogglePin(context.Background(), "n1")
	require.NoError(t, err)

	assert.True(t, note.IsPinned)
	assert.True(t, s.Store().Get("n1").IsPinned)

	// The request carries the pin flag and nothing else
	require.Contains(t, updateBody, "isPinned")
	assert.Len(t, updateBody, 1)
}

func TestSessionDeleteRemovesFromSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notes":
			writeData(w, http.StatusOK, []Note{{ID: "n1"}, {ID: "n2"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/notes/n1":
			writeData(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
		}
	}))
	defer srv.Close()

	s := NewSession(New(srv.URL))
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "n1"))
	assert.Equal(t, []string{"n2"}, idsOf(s.Store().Notes()))
}

func TestSessionDeleteKeepsSnapshotOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notes":
			writeData(w, http.StatusOK, []Note{{ID: "n1"}})
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Note not found")
		}
	}))
	defer srv.Close()

	s := NewSession(New(srv.URL))
	require.NoError(t, s.Refresh(context.Background()))

	err := s.Delete(context.Background(), "n1")
	require.Error(t, err)
	assert.Equal(t, 1, s.Store().Len())
}
