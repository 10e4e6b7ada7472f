package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/slotwatch/internal/config"
)

type sentMessage struct {
	Path   string
	ChatID string
	Text   string
}

type captureServer struct {
	*httptest.Server

	mu     sync.Mutex
	sent   []sentMessage
	status int
}

func newCaptureServer(t *testing.T) *captureServer {
	t.Helper()
	cs := &captureServer{status: http.StatusOK}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ChatID string `json:"chat_id"`
			Text   string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cs.mu.Lock()
		cs.sent = append(cs.sent, sentMessage{Path: r.URL.Path, ChatID: body.ChatID, Text: body.Text})
		status := cs.status
		cs.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *captureServer) messages() []sentMessage {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]sentMessage(nil), cs.sent...)
}

func newTestRouter(srv *captureServer, primary, secondary config.Recipient) (*Router, *[]string) {
	cfg := config.Config{NotifyAPIBase: srv.URL, Primary: primary, Secondary: secondary}
	r := NewRouter(cfg)
	var logged []string
	r.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}
	return r, &logged
}

func TestNotifyBothDeliversToBothWithPrefixes(t *testing.T) {
	srv := newCaptureServer(t)
	r, logged := newTestRouter(srv,
		config.Recipient{Token: "tok-a", ChatID: "111", Prefix: "[me] "},
		config.Recipient{Token: "tok-b", ChatID: "222"},
	)

	r.NotifyBoth("slots available")

	msgs := srv.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "/bottok-a/sendMessage", msgs[0].Path)
	assert.Equal(t, "111", msgs[0].ChatID)
	assert.Equal(t, "[me] slots available", msgs[0].Text)
	assert.Equal(t, "/bottok-b/sendMessage", msgs[1].Path)
	assert.Equal(t, "slots available", msgs[1].Text)
	assert.Empty(t, *logged)
}

func TestNotifyBothFallsBackToLogWhenNothingConfigured(t *testing.T) {
	srv := newCaptureServer(t)
	r, logged := newTestRouter(srv, config.Recipient{}, config.Recipient{})

	r.NotifyBoth("slots available")

	assert.Empty(t, srv.messages())
	assert.Len(t, *logged, 1)
}

func TestNotifyBothFallsBackToLogWhenAllDeliveriesFail(t *testing.T) {
	srv := newCaptureServer(t)
	srv.status = http.StatusBadGateway
	r, logged := newTestRouter(srv,
		config.Recipient{Token: "tok-a", ChatID: "111"},
		config.Recipient{},
	)

	r.NotifyBoth("slots available")

	assert.Len(t, srv.messages(), 1)
	assert.Len(t, *logged, 1)
}

func TestNotifyPrimaryOnly(t *testing.T) {
	srv := newCaptureServer(t)
	r, logged := newTestRouter(srv,
		config.Recipient{Token: "tok-a", ChatID: "111"},
		config.Recipient{Token: "tok-b", ChatID: "222"},
	)

	r.NotifyPrimary("booked")

	msgs := srv.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "/bottok-a/sendMessage", msgs[0].Path)
	assert.Empty(t, *logged)
}

func TestNotifySecondarySkippedWhenUnconfigured(t *testing.T) {
	srv := newCaptureServer(t)
	r, logged := newTestRouter(srv, config.Recipient{Token: "tok-a", ChatID: "111"}, config.Recipient{})

	r.NotifySecondary("slots available")

	assert.Empty(t, srv.messages())
	assert.Empty(t, *logged)
}
