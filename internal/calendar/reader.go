// Package calendar drives login and navigation on the portal and extracts
// the availability text.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/slotwatch/internal/browser"
	"github.com/example/slotwatch/internal/config"
	"github.com/example/slotwatch/internal/selector"
)

// ErrLoginFieldsNotFound means neither candidate list resolved a login
// field. That is a markup contract break requiring a selector update, not a
// transient fault; callers must not retry.
var ErrLoginFieldsNotFound = errors.New("could not locate login fields; selector candidates need updating")

const (
	loginFieldTimeout  = 7 * time.Second
	submitClickTimeout = 3 * time.Second
	openerClickTimeout = 6 * time.Second
	containerTimeout   = 6 * time.Second
	configuredTimeout  = 15 * time.Second
	readyTimeout       = 20 * time.Second
	navigateTimeout    = 45 * time.Second
	postOpenTimeout    = 30 * time.Second
)

type Reader struct {
	cfg config.Config
}

func NewReader(cfg config.Config) *Reader {
	return &Reader{cfg: cfg}
}

// Login fills the credentials into the first resolvable username and
// password fields and submits. When no submit control resolves, it falls
// back to pressing Enter in the password field.
func (r *Reader) Login(page browser.Page) error {
	userSel, ok := selector.FirstPresent(page, selector.UsernameFields, loginFieldTimeout)
	if !ok {
		return ErrLoginFieldsNotFound
	}
	passSel, ok := selector.FirstPresent(page, selector.PasswordFields, loginFieldTimeout)
	if !ok {
		return ErrLoginFieldsNotFound
	}

	if err := page.Locator(userSel).First().Fill(r.cfg.Username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := page.Locator(passSel).First().Fill(r.cfg.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if _, ok := selector.ClickFirstAvailable(page, selector.SubmitControls, submitClickTimeout); !ok {
		if err := page.Locator(passSel).First().Press("Enter"); err != nil {
			return fmt.Errorf("submitting login: %w", err)
		}
	}
	return nil
}

// OpenCalendar navigates to the calendar view, either via the configured
// direct URL or by clicking a resolved opener control.
func (r *Reader) OpenCalendar(page browser.Page) error {
	if r.cfg.CalendarURL != "" {
		return page.Goto(r.cfg.CalendarURL, browser.DOMContentLoaded, navigateTimeout)
	}
	selector.ClickFirstAvailable(page, selector.ScheduleOpeners, openerClickTimeout)
	return page.WaitForLoadState(browser.DOMContentLoaded, postOpenTimeout)
}

// ReadResilient extracts the availability text, recovering once if the tab
// swapped or closed mid-flow. It re-acquires the active page before
// extraction and again after a transport-level failure; a second failure
// propagates.
func (r *Reader) ReadResilient(session browser.Session) (string, error) {
	page, err := session.ActivePage()
	if err != nil {
		return "", err
	}
	if err := r.awaitReady(page); err != nil {
		return "", err
	}
	text, err := r.extractText(page)
	if err == nil {
		return text, nil
	}
	if !browser.IsTransport(err) {
		return "", err
	}

	page, perr := session.ActivePage()
	if perr != nil {
		return "", err
	}
	if rerr := r.awaitReady(page); rerr != nil {
		return "", rerr
	}
	return r.extractText(page)
}

func (r *Reader) awaitReady(page browser.Page) error {
	if err := page.Locator("body").First().WaitVisible(readyTimeout); err != nil {
		return err
	}
	return page.WaitForLoadState(browser.NetworkIdle, readyTimeout)
}

// extractText prefers the explicitly configured container, then the
// heuristic container candidates, then the full page text.
func (r *Reader) extractText(page browser.Page) (string, error) {
	if r.cfg.CalendarSelector != "" {
		loc := page.Locator(r.cfg.CalendarSelector).First()
		if err := loc.WaitVisible(configuredTimeout); err != nil {
			return "", fmt.Errorf("configured calendar selector %q: %w", r.cfg.CalendarSelector, err)
		}
		return loc.InnerText()
	}
	if sel, ok := selector.FirstPresent(page, selector.CalendarContainers, containerTimeout); ok {
		return page.Locator(sel).First().InnerText()
	}
	return page.InnerText("body")
}
