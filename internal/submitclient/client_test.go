package submitclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialastudent/stocktaker-intake/internal/session"
)

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/u1/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserStatus{Exists: true, User: &User{ID: "u1", Email: "u@example.com"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	status, err := c.GetStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.Equal(t, "u@example.com", status.User.Email)
}

func TestGetStatusNotFoundIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(UserStatus{Exists: false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	status, err := c.GetStatus(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.Nil(t, status.User)
}

func TestServerMessagePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "database unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	err := c.UpsertUser(context.Background(), UpsertRequest{UserID: "u1"})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "database unavailable", apiErr.Error())
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	err := &APIError{StatusCode: 502}
	assert.Equal(t, "server returned status 502", err.Error())
}

func TestBookedSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booked-slots", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]map[string]int{
			"2026-09-02": {"08:30": 10, "09:00": 3},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	counts, err := c.BookedSlots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, counts["2026-09-02"]["08:30"])
	assert.Equal(t, 3, counts["2026-09-02"]["09:00"])
}

func TestBookedSlotsCancellable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	c := NewClient(srv.URL + "/api")
	go func() {
		_, err := c.BookedSlots(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.Error(t, err, "cancelled fetch must not deliver results")
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled request did not return")
	}
}

func TestFlowAppliesThenBooks(t *testing.T) {
	var applyCalls, bookCalls int
	var bookReq BookSlotRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/apply":
			applyCalls++
			_ = json.NewEncoder(w).Encode(ApplyResponse{Success: true, ApplicationID: "app-123"})
		case "/api/book-slot":
			bookCalls++
			_ = json.NewDecoder(r.Body).Decode(&bookReq)
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(session.Snapshot{Step: 6}))

	flow := NewFlow(NewClient(srv.URL+"/api"), store, nil)
	resp, err := flow.Run(context.Background(), "u1", map[string]string{
		"firstnames":    "Thabo",
		"interviewDate": "2026-09-02",
		"interviewTime": "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "app-123", resp.ApplicationID)
	assert.Equal(t, 1, applyCalls)
	assert.Equal(t, 1, bookCalls)
	assert.Equal(t, BookSlotRequest{ApplicationID: "app-123", Date: "2026-09-02", Time: "09:00"}, bookReq)

	// Success clears the persisted session.
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFlowSkipsBookingWithoutSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/book-slot" {
			t.Error("book-slot must not be called without a chosen slot")
		}
		_ = json.NewEncoder(w).Encode(ApplyResponse{Success: true, ApplicationID: "app-9"})
	}))
	defer srv.Close()

	flow := NewFlow(NewClient(srv.URL+"/api"), nil, nil)
	_, err := flow.Run(context.Background(), "u1", map[string]string{"firstnames": "Zandi"})
	require.NoError(t, err)
}

func TestFlowFailureKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to save application"})
	}))
	defer srv.Close()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(session.Snapshot{Step: 6, FormData: map[string]string{"firstnames": "T"}}))

	flow := NewFlow(NewClient(srv.URL+"/api"), store, nil)
	_, err := flow.Run(context.Background(), "u1", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, "Failed to save application", err.Error())

	snap, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, snap, "failed submission must not lose entered data")
	assert.Equal(t, "T", snap.FormData["firstnames"])
}

func TestFlowRefusesConcurrentRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		_ = json.NewEncoder(w).Encode(ApplyResponse{Success: true})
	}))
	defer srv.Close()

	flow := NewFlow(NewClient(srv.URL+"/api"), nil, nil)

	go func() {
		_, _ = flow.Run(context.Background(), "u1", map[string]string{})
	}()
	<-started

	assert.True(t, flow.InFlight())
	_, err := flow.Run(context.Background(), "u1", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")
	close(release)
}
