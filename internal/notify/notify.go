// Package notify fans a message out to the configured chat recipients.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/example/slotwatch/internal/config"
)

// Router delivers messages to up to two independently configured recipients.
// Delivery is fire-and-forget with one attempt per recipient; a message that
// reaches nobody is logged locally, never dropped.
type Router struct {
	client    *resty.Client
	apiBase   string
	primary   config.Recipient
	secondary config.Recipient

	// logf is the local fallback sink.
	logf func(format string, args ...any)
}

func NewRouter(cfg config.Config) *Router {
	return &Router{
		client:    resty.New().SetTimeout(10 * time.Second),
		apiBase:   cfg.NotifyAPIBase,
		primary:   cfg.Primary,
		secondary: cfg.Secondary,
		logf:      log.Printf,
	}
}

// deliver posts one message to the recipient's sendMessage endpoint.
// Transport errors and non-2xx responses both count as delivery failure and
// are never propagated.
func (r *Router) deliver(rec config.Recipient, msg string) bool {
	if rec.Prefix != "" {
		msg = rec.Prefix + msg
	}
	rsp, err := r.client.R().
		SetBody(map[string]string{"chat_id": rec.ChatID, "text": msg}).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", r.apiBase, rec.Token))
	if err != nil {
		return false
	}
	code := rsp.StatusCode()
	return code >= 200 && code <= 299
}

// NotifyPrimary sends to the primary recipient, logging the message when the
// recipient is unconfigured or delivery fails.
func (r *Router) NotifyPrimary(msg string) {
	if !r.primary.Configured() || !r.deliver(r.primary, msg) {
		r.logf("notify: %s", msg)
	}
}

// NotifySecondary sends to the secondary recipient; logs only on delivery
// failure. An unconfigured secondary recipient is simply skipped.
func (r *Router) NotifySecondary(msg string) {
	if !r.secondary.Configured() {
		return
	}
	if !r.deliver(r.secondary, msg) {
		r.logf("notify: %s", msg)
	}
}

// NotifyBoth sends the same message to every configured recipient. When no
// attempt succeeds (including when none is configured) the message goes to
// the local log.
func (r *Router) NotifyBoth(msg string) {
	anySent := false
	if r.primary.Configured() && r.deliver(r.primary, msg) {
		anySent = true
	}
	if r.secondary.Configured() && r.deliver(r.secondary, msg) {
		anySent = true
	}
	if !anySent {
		r.logf("notify: %s", msg)
	}
}
