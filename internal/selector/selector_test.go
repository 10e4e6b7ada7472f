package selector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/slotwatch/internal/browser/browsertest"
)

func TestFirstPresentReturnsFirstVisible(t *testing.T) {
	page := browsertest.NewPage()
	page.Visible["b"] = true
	page.Visible["c"] = true

	sel, ok := FirstPresent(page, []string{"a", "b", "c"}, time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, "b", sel)
}

func TestFirstPresentExhaustedReturnsNotOK(t *testing.T) {
	page := browsertest.NewPage()

	sel, ok := FirstPresent(page, []string{"a", "b", "c"}, time.Millisecond)
	assert.False(t, ok)
	assert.Empty(t, sel)
}

func TestClickFirstAvailableSwallowsFailures(t *testing.T) {
	page := browsertest.NewPage()
	page.ClickErrs["a"] = errors.New("not clickable")
	page.Visible["b"] = true

	sel, ok := ClickFirstAvailable(page, []string{"a", "b"}, time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, "b", sel)
	assert.Equal(t, []string{"b#0"}, page.Clicked)
}

func TestClickFirstAvailableAllFail(t *testing.T) {
	page := browsertest.NewPage()
	page.ClickErrs["a"] = errors.New("nope")
	page.ClickErrs["b"] = errors.New("nope")

	_, ok := ClickFirstAvailable(page, []string{"a", "b"}, time.Millisecond)
	assert.False(t, ok)
	assert.Empty(t, page.Clicked)
}
