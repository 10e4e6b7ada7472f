package booking

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/slotwatch/internal/browser"
	"github.com/example/slotwatch/internal/browser/browsertest"
)

const btnSel = `button:has-text("Schedule")`
const linkSel = `a:has-text("Schedule")`

func newEngine() *Engine {
	return NewEngine(NewVocabularyOracle(), false)
}

func TestNoActionControls(t *testing.T) {
	page := browsertest.NewPage()
	res := newEngine().AttemptTopBooking(page)
	assert.Equal(t, Result{Success: false, Reason: ReasonNoButtons}, res)
}

func TestClickTopmostByScreenPosition(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 2
	page.Boxes[btnSel] = []*browser.Box{{Y: 300}, {Y: 40}}
	page.OnClick = func(sel string, i int) {
		if sel == btnSel && i == 1 {
			page.Texts["body"] = "Your round is scheduled"
		}
	}

	res := newEngine().AttemptTopBooking(page)
	assert.Equal(t, Result{Success: true, Reason: ReasonOK}, res)
	// topmost (Y=40) is the second match of the first candidate
	assert.Equal(t, btnSel+"#1", page.Clicked[0])
}

func TestUnmeasurableControlsRankLast(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 2 // both unmeasurable
	page.Counts[linkSel] = 1
	page.Boxes[linkSel] = []*browser.Box{{Y: 40}}

	controls := collectControls(page)
	assert.Len(t, controls, 3)
	assert.Equal(t, 40.0, controls[0].y)
}

func TestUnmeasurableControlStillClicked(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1 // no bounding box at all
	page.OnClick = func(string, int) { page.Texts["body"] = "geboekt" }

	res := newEngine().AttemptTopBooking(page)
	assert.True(t, res.Success)
}

func TestForcedClickFallback(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1
	page.ClickErrs[btnSel] = errors.New("intercepted by overlay")
	page.OnClick = func(sel string, _ int) {
		if sel == btnSel {
			page.Texts["body"] = "confirmed"
		}
	}

	res := newEngine().AttemptTopBooking(page)
	assert.True(t, res.Success)
}

func TestBothClicksFailReportsSummary(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1
	page.ClickErrs[btnSel] = errors.New("intercepted")
	page.ForceClickErrs[btnSel] = errors.New("intercepted")

	res := newEngine().AttemptTopBooking(page)
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Reason, "click-failed: "))
}

func TestNoSuccessTextAfterConfirmRetry(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1
	page.Texts["body"] = "please wait"

	res := newEngine().AttemptTopBooking(page)
	assert.Equal(t, Result{Success: false, Reason: ReasonNoSuccess}, res)

	// confirm sweep ran twice: schedule click + two confirm clicks
	confirms := 0
	for _, c := range page.Clicked {
		if strings.HasPrefix(c, `button:has-text("Confirm")`) {
			confirms++
		}
	}
	assert.Equal(t, 2, confirms)
}

func TestDelayedConfirmationDetectedOnSecondSweep(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1
	page.Texts["body"] = "please wait"
	confirmClicks := 0
	page.OnClick = func(sel string, _ int) {
		if strings.HasPrefix(sel, `button:has-text("Confirm")`) {
			confirmClicks++
			if confirmClicks == 2 {
				page.Texts["body"] = "Afspraak bevestigd"
			}
		}
	}

	res := newEngine().AttemptTopBooking(page)
	assert.Equal(t, Result{Success: true, Reason: ReasonOK}, res)
}

func TestDryRunStopsBeforeClick(t *testing.T) {
	page := browsertest.NewPage()
	page.Counts[btnSel] = 1

	res := NewEngine(NewVocabularyOracle(), true).AttemptTopBooking(page)
	assert.Equal(t, Result{Success: false, Reason: ReasonDryRun}, res)
	assert.Empty(t, page.Clicked)
}

func TestVocabularyOracle(t *testing.T) {
	oracle := NewVocabularyOracle()
	assert.True(t, oracle.Confirmed("Your test round has been SCHEDULED."))
	assert.True(t, oracle.Confirmed("afspraak geboekt"))
	assert.False(t, oracle.Confirmed("Geen dagen gevonden."))
	assert.False(t, oracle.Confirmed(""))
}
