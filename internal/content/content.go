// Package content normalizes extracted page text and decides availability.
//
// The monitored portal embeds a live clock and the current date in the page,
// so two reads of the same underlying availability state rarely produce
// byte-identical text. Normalize strips those volatile tokens so that
// Fingerprint stays stable across reads that only differ in timestamps.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	timeRe       = regexp.MustCompile(`\b\d{1,2}[:.]\d{2}(:\d{2})?\b`)
	isoDateRe    = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDateRe  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)

	// The portal shows a fixed phrase when nothing is bookable; availability
	// is the absence of that phrase, in either Dutch or English.
	noSlotsRe = regexp.MustCompile(`(?i)geen\s+dagen\s+gevonden|geen\s+dagen\s+beschikbaar|no\s+days\s+found`)
)

// Normalize removes time-of-day and date tokens and collapses whitespace.
// The collapse runs last so that stripping a token between two words does
// not leave a double space; the result is a fixed point of Normalize.
func Normalize(raw string) string {
	t := timeRe.ReplaceAllString(raw, "")
	t = isoDateRe.ReplaceAllString(t, "")
	t = slashDateRe.ReplaceAllString(t, "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Fingerprint returns the SHA-256 hex digest of the normalized text. The
// fingerprint is stored for diagnostics only; transition decisions are made
// on the availability flag, never on fingerprint equality.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(Normalize(raw)))
	return hex.EncodeToString(sum[:])
}

// HasAvailability reports whether the page text indicates at least one
// bookable slot, i.e. the "no days" phrase is absent.
func HasAvailability(text string) bool {
	return !noSlotsRe.MatchString(text)
}
