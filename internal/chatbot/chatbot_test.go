package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pumpwatch/monitor/internal/render"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) *Sender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New("test-token", "chat1")
	s.http.SetBaseURL(srv.URL)
	return s
}

func TestSendAlertPostsRenderedMessage(t *testing.T) {
	var gotBody sendMessageRequest
	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	err := s.SendAlert(context.Background(), render.TokenDetails{
		Mint: "Mint1", Name: "Pepe", Symbol: "PEPE", MarketCap: "60000",
		Creator: "Creator1", LaunchTime: "2026-01-01 01:00 AM ET",
	})
	require.NoError(t, err)
	require.Equal(t, "chat1", gotBody.ChatID)
	require.Equal(t, "MarkdownV2", gotBody.ParseMode)
	require.Contains(t, gotBody.Text, "Pepe")
}

func TestSendAlertPropagatesBotError(t *testing.T) {
	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResult{OK: false, ErrorCode: 400, Description: "chat not found"})
	})

	err := s.SendAlert(context.Background(), render.TokenDetails{Mint: "Mint1", Name: "Pepe", Symbol: "PEPE"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat not found")
}
