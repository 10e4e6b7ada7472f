// Package selector resolves elements by ordered fallback over candidate
// locator lists.
package selector

import (
	"time"

	"github.com/example/slotwatch/internal/browser"
)

// FirstPresent waits up to timeout per candidate for the first match to
// become visible and returns the winning selector. A candidate that never
// shows up is an expected outcome, not an error; only exhaustion of the
// whole list is reported, as ok=false.
func FirstPresent(page browser.Page, candidates []string, timeout time.Duration) (string, bool) {
	for _, sel := range candidates {
		if err := page.Locator(sel).First().WaitVisible(timeout); err == nil {
			return sel, true
		}
	}
	return "", false
}

// ClickFirstAvailable clicks the first candidate that accepts a click,
// swallowing per-candidate failures. Returns the clicked selector, or
// ok=false when every candidate failed.
func ClickFirstAvailable(page browser.Page, candidates []string, timeout time.Duration) (string, bool) {
	for _, sel := range candidates {
		if err := page.Locator(sel).First().Click(timeout, false); err == nil {
			return sel, true
		}
	}
	return "", false
}
