// In file: internal/hints/extractor_test.go
package hints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractParams_EmptyDescription(t *testing.T) {
	assert.Empty(t, ExtractParams(""))
}

func TestExtractParams_RequiresClause(t *testing.T) {
	params := ExtractParams("Fetches an event. Requires: calendarId, eventId.")

	assert.Contains(t, params, "calendarId")
	assert.Contains(t, params, "eventId")
	assert.LessOrEqual(t, len(params), 5)
}

func TestExtractParams_ProvideClause(t *testing.T) {
	params := ExtractParams("Provide: query, maxResults to search the mailbox.")

	assert.Contains(t, params, "query")
	assert.Contains(t, params, "maxResults")
}

func TestExtractParams_CommonFieldVocabulary(t *testing.T) {
	params := ExtractParams("Deletes the message identified by messageId for the given user_id.")

	assert.Contains(t, params, "messageId")
	assert.Contains(t, params, "user_id")
}

func TestExtractParams_DiscardsShortTokens(t *testing.T) {
	params := ExtractParams("Requires: id, to, calendarId.")

	assert.NotContains(t, params, "id")
	assert.NotContains(t, params, "to")
	assert.Contains(t, params, "calendarId")
}

func TestExtractParams_CapsAtFive(t *testing.T) {
	params := ExtractParams("Requires: alpha, bravo, charlie, delta, echo, foxtrot, golf.")

	assert.Len(t, params, 5)
}

func TestExtractParams_StripsBrackets(t *testing.T) {
	params := ExtractParams("Needs: (calendarId) [eventId].")

	assert.Contains(t, params, "calendarId")
	assert.Contains(t, params, "eventId")
}

func TestExtractParams_NoMatchableText(t *testing.T) {
	assert.Empty(t, ExtractParams("Lists everything. No setup."))
}
