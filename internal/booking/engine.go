// Package booking locates the best-positioned schedule control, clicks it
// and verifies the outcome heuristically.
package booking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/example/slotwatch/internal/browser"
	"github.com/example/slotwatch/internal/selector"
)

// Reason codes for Result. Exact-match strings; callers never parse beyond
// equality.
const (
	ReasonOK          = "ok"
	ReasonNoButtons   = "no-schedule-buttons"
	ReasonNoSuccess   = "no-success-text"
	ReasonDryRun      = "dry-run"
	reasonClickPrefix = "click-failed: "
)

// Result is the outcome of one booking attempt.
type Result struct {
	Success bool
	Reason  string
}

const (
	// maxPerSelector caps enumeration per candidate so a pathological page
	// cannot make the scan unbounded.
	maxPerSelector = 50

	clickTimeout   = 7 * time.Second
	confirmTimeout = 4 * time.Second
	settleTimeout  = 20 * time.Second
)

type Engine struct {
	Oracle OutcomeOracle
	// DryRun locates and ranks action controls but stops before the click.
	DryRun bool
}

func NewEngine(oracle OutcomeOracle, dryRun bool) *Engine {
	return &Engine{Oracle: oracle, DryRun: dryRun}
}

type control struct {
	loc browser.Locator
	y   float64
}

// AttemptTopBooking clicks the visually topmost schedule control, sweeps any
// confirmation dialog, and checks the page text against the outcome oracle.
// All failures are reported in the Result; the engine never panics the cycle.
func (e *Engine) AttemptTopBooking(page browser.Page) Result {
	controls := collectControls(page)
	if len(controls) == 0 {
		return Result{Success: false, Reason: ReasonNoButtons}
	}
	if e.DryRun {
		return Result{Success: false, Reason: ReasonDryRun}
	}

	top := controls[0].loc
	if err := top.Click(clickTimeout, false); err != nil {
		// retry once bypassing actionability checks
		if err := top.Click(clickTimeout, true); err != nil {
			return Result{Success: false, Reason: reasonClickPrefix + summarize(err)}
		}
	}

	selector.ClickFirstAvailable(page, selector.ConfirmControls, confirmTimeout)
	_ = page.WaitForLoadState(browser.NetworkIdle, settleTimeout)

	if e.confirmed(page) {
		return Result{Success: true, Reason: ReasonOK}
	}
	// second chance for a delayed confirmation dialog
	selector.ClickFirstAvailable(page, selector.ConfirmControls, confirmTimeout)
	if e.confirmed(page) {
		return Result{Success: true, Reason: ReasonOK}
	}
	return Result{Success: false, Reason: ReasonNoSuccess}
}

func (e *Engine) confirmed(page browser.Page) bool {
	body, err := page.InnerText("body")
	if err != nil {
		return false
	}
	return e.Oracle.Confirmed(body)
}

// collectControls enumerates all action-control matches and ranks them by
// ascending vertical position. Unmeasurable elements rank last rather than
// being excluded: they are still valid click targets when nothing else
// qualifies. Ties keep discovery order across the candidate list.
func collectControls(page browser.Page) []control {
	var out []control
	for _, sel := range selector.ActionControls {
		loc := page.Locator(sel)
		n, err := loc.Count()
		if err != nil {
			continue
		}
		if n > maxPerSelector {
			n = maxPerSelector
		}
		for i := 0; i < n; i++ {
			el := loc.Nth(i)
			y := math.Inf(1)
			if box, ok := el.BoundingBox(); ok {
				y = box.Y
			}
			out = append(out, control{loc: el, y: y})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].y < out[j].y })
	return out
}

func summarize(err error) string {
	return fmt.Sprintf("%.120s", err.Error())
}
