package booking

import "strings"

// OutcomeOracle decides whether the page text after a booking attempt
// indicates success. The portal exposes no machine-readable booking receipt,
// so the default oracle matches a fixed success vocabulary; a structured
// oracle can replace it without touching the engine's control flow.
type OutcomeOracle interface {
	Confirmed(pageText string) bool
}

// successWords covers Dutch and English phrasings of a confirmed booking.
// Known limitation: stray occurrences of these words elsewhere on the page
// produce false positives, and unrecognized phrasings produce false
// negatives.
var successWords = []string{"geboekt", "gepland", "bevestigd", "booked", "scheduled", "confirmed"}

type vocabularyOracle struct{}

// NewVocabularyOracle returns the fixed-vocabulary oracle.
func NewVocabularyOracle() OutcomeOracle { return vocabularyOracle{} }

func (vocabularyOracle) Confirmed(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, w := range successWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
