// Package runner sequences one observation cycle: read the portal, compare
// against the persisted state, optionally attempt a booking, and notify.
package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/slotwatch/internal/booking"
	"github.com/example/slotwatch/internal/browser"
	"github.com/example/slotwatch/internal/calendar"
	"github.com/example/slotwatch/internal/config"
	"github.com/example/slotwatch/internal/content"
	"github.com/example/slotwatch/internal/state"
)

// Notifier is the outbound message surface the cycle needs.
type Notifier interface {
	NotifyPrimary(msg string)
	NotifySecondary(msg string)
	NotifyBoth(msg string)
}

const (
	screenshotFile = "error_screenshot.png"
	markupFile     = "last_page.html"

	entryTimeout       = 45 * time.Second
	loginSettleTimeout = 30 * time.Second

	injectedText = "3 slots open [injected by BOOK_TEST_MODE=inject]"

	msgBooked         = "Slot booked automatically via the topmost schedule control. Check the portal to confirm."
	msgSlotsShort     = "Slots are available on the portal."
	msgSlotsFull      = "Slots are available on the portal right now. Log in and book quickly."
	msgTestPing       = "Test ping: the portal shows no availability and notifications are working."
	msgNoControlFound = "Slots found but no schedule control was detected. Book manually."
)

type Runner struct {
	cfg      config.Config
	store    state.Store
	notifier Notifier
	reader   *calendar.Reader
	engine   *booking.Engine

	newSession func() (browser.Session, error)

	now  func() time.Time
	logf func(format string, args ...any)
}

func New(cfg config.Config, store state.Store, notifier Notifier, newSession func() (browser.Session, error)) *Runner {
	return &Runner{
		cfg:        cfg,
		store:      store,
		notifier:   notifier,
		reader:     calendar.NewReader(cfg),
		engine:     booking.NewEngine(booking.NewVocabularyOracle(), cfg.BookTestMode == config.BookTestDryRun),
		newSession: newSession,
		now:        time.Now,
		logf:       log.Printf,
	}
}

// RunCycle performs one complete observation cycle. A notification fires
// only on the transition to available; the state record is persisted on
// every completed cycle, changed or not.
func (r *Runner) RunCycle(ctx context.Context) error {
	prev, err := r.store.Load(ctx)
	if err != nil {
		// prior state is advisory; a broken store never kills the cycle
		r.logf("runner: state load failed, assuming empty state: %v", err)
		prev = state.Observation{}
	}

	text, bookRes, err := r.observe(prev.Booked)
	if err != nil {
		return err
	}

	availableNow := content.HasAvailability(text)
	cur := state.Observation{
		LastSeenAt:  r.now(),
		Available:   availableNow,
		Fingerprint: content.Fingerprint(text),
		Booked:      prev.Booked,
	}

	if bookRes != nil && bookRes.Success {
		cur.Booked = true
		if err := r.store.Save(ctx, cur); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		r.notifier.NotifyPrimary(msgBooked)
		r.notifier.NotifySecondary(msgSlotsShort)
		return nil
	}

	if err := r.store.Save(ctx, cur); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	if r.cfg.TestPingWhenNoDays && !availableNow {
		r.notifier.NotifyBoth(msgTestPing)
	}

	if availableNow && !prev.Available {
		if r.cfg.AutoBook && !prev.Booked {
			if bookRes == nil || bookRes.Reason == booking.ReasonNoButtons {
				r.notifier.NotifyPrimary(msgNoControlFound)
			} else {
				r.notifier.NotifyPrimary(fmt.Sprintf(
					"Slots found but automatic booking failed (reason: %s). Book manually.", bookRes.Reason))
			}
			r.notifier.NotifySecondary(msgSlotsShort)
		} else {
			r.notifier.NotifyBoth(msgSlotsFull)
		}
	} else {
		r.logf("runner: no new availability")
	}
	return nil
}

// observe runs the browser phase: login, navigate, extract, and conditionally
// attempt a booking. The session is torn down on every exit path; on failure
// a screenshot and the page markup are captured first, best-effort.
func (r *Runner) observe(alreadyBooked bool) (text string, res *booking.Result, err error) {
	sess, err := r.newSession()
	if err != nil {
		return "", nil, fmt.Errorf("starting browser session: %w", err)
	}
	defer func() {
		if err != nil {
			r.captureDiagnostics(sess)
			err = fmt.Errorf("observation failed: %w (see %s and %s)", err, screenshotFile, markupFile)
		}
		sess.Close()
	}()

	page, err := sess.ActivePage()
	if err != nil {
		return "", nil, err
	}
	if err = page.Goto(r.cfg.BaseURL, browser.DOMContentLoaded, entryTimeout); err != nil {
		return "", nil, err
	}
	if err = r.reader.Login(page); err != nil {
		return "", nil, err
	}
	if err = page.WaitForLoadState(browser.NetworkIdle, loginSettleTimeout); err != nil {
		return "", nil, err
	}
	if err = r.reader.OpenCalendar(page); err != nil {
		return "", nil, err
	}

	text, err = r.reader.ReadResilient(sess)
	if err != nil {
		return "", nil, err
	}

	if r.cfg.BookTestMode == config.BookTestInject {
		text = injectedText
	}

	if r.cfg.AutoBook && !alreadyBooked && content.HasAvailability(text) {
		if page, perr := sess.ActivePage(); perr == nil {
			result := r.engine.AttemptTopBooking(page)
			res = &result
		} else {
			// a lost page is a failed attempt, not an absent control
			res = &booking.Result{Success: false, Reason: fmt.Sprintf("page-unavailable: %.120v", perr)}
		}
	}
	return text, res, nil
}

// captureDiagnostics is best-effort: its own failures are swallowed so they
// never mask the original error.
func (r *Runner) captureDiagnostics(sess browser.Session) {
	page, err := sess.ActivePage()
	if err != nil {
		return
	}
	_ = page.Screenshot(screenshotFile)
	if html, err := page.Content(); err == nil {
		_ = os.WriteFile(markupFile, []byte(html), 0o600)
	}
}
