// In file: internal/feedback/synthesizer_test.go
package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesize_ReportsQuotedMissingFields(t *testing.T) {
	out := Synthesize("GOOGLE_CALENDAR_GET_EVENT", "missing 'calendarId'", "Fetches one event.")

	assert.Contains(t, out, "GOOGLE_CALENDAR_GET_EVENT failed")
	assert.Contains(t, out, "Missing fields: calendarId")
}

func TestSynthesize_CapsMissingFieldsAtFive(t *testing.T) {
	errText := "bad fields 'a1' 'b2' 'c3' 'd4' 'e5' 'f6' 'g7'"

	out := Synthesize("TOOL", errText, "")

	assert.Contains(t, out, "Missing fields: a1, b2, c3, d4, e5\n")
}

func TestSynthesize_SuggestsParametersFromDescription(t *testing.T) {
	out := Synthesize("TOOL", "boom", "Requires: calendarId, eventId.")

	assert.Contains(t, out, "Suggested parameters:")
	assert.Contains(t, out, "calendarId")
	assert.Contains(t, out, "eventId")
}

func TestSynthesize_FallsBackToDescriptionWhenNoHints(t *testing.T) {
	out := Synthesize("TOOL", "boom", "Does a thing. Nothing else documented about it!")

	assert.Contains(t, out, "Tool description: Does a thing")
	assert.NotContains(t, out, "Suggested parameters:")
}

func TestSynthesize_TruncatesLongErrorText(t *testing.T) {
	longErr := strings.Repeat("e", 500)

	out := Synthesize("TOOL", longErr, "")

	assert.Contains(t, out, strings.Repeat("e", 200))
	assert.NotContains(t, out, strings.Repeat("e", 201))
}

func TestSynthesize_AlwaysProvidesSomeGuidance(t *testing.T) {
	out := Synthesize("TOOL", "opaque failure", "")

	// Even with nothing to mine, the diagnostic still points at the (empty)
	// description rather than leaving the loop guidance-free.
	assert.Contains(t, out, "💡")
}
