// In file: internal/postprocess/postprocess_test.go
package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_NoMarkersReturnsUnchanged(t *testing.T) {
	text := "You have 3 meetings tomorrow: {\"summary\": \"standup\"}"

	assert.Equal(t, text, Sanitize(text))
}

func TestSanitize_SingleEmailLeak(t *testing.T) {
	text := `Here is the email: {"sender": "a@x.com", "subject": "Hi", "to": "b@x.com", "messageText": "hello world", "labelIds": ["INBOX"]}`

	out := Sanitize(text)

	assert.NotContains(t, out, "labelIds")
	assert.Contains(t, out, "From: a@x.com")
	assert.Contains(t, out, "Subject: Hi")
	assert.Contains(t, out, "To: b@x.com")
	assert.Contains(t, out, "hello world")
}

func TestSanitize_EmailListLeakUnderData(t *testing.T) {
	text := `Result: {"data": {"emails": [` +
		`{"sender": "a@x.com", "subject": "One", "messageText": "first"},` +
		`{"sender": "b@x.com", "subject": "Two", "messageText": "second"}` +
		`]}, "labelIds": []}`

	out := Sanitize(text)

	assert.Contains(t, out, "Found 2 emails")
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "b@x.com")
	assert.NotContains(t, out, "labelIds")
}

func TestSanitize_EmailListLeakTopLevel(t *testing.T) {
	text := `{"emails": [{"sender": "a@x.com", "subject": "One", "messageText": "first"}]}`

	assert.Contains(t, Sanitize(text), "Found 1 emails")
}

func TestSanitize_PythonLiteralFallback(t *testing.T) {
	text := `Leaked: {'sender': 'a@x.com', 'subject': 'Hi', 'messageText': 'hello', 'read': True, 'labelIds': None}`

	out := Sanitize(text)

	assert.NotContains(t, out, "labelIds")
	assert.Contains(t, out, "From: a@x.com")
}

func TestSanitize_UnsalvageableLeakReturnsOriginal(t *testing.T) {
	text := `The messageText field was empty and there was no payload.`

	assert.Equal(t, text, Sanitize(text))
}

func TestSanitize_BrokenSpanReturnsOriginal(t *testing.T) {
	text := `messageText: { this is not parseable at all }`

	assert.Equal(t, text, Sanitize(text))
}

func TestNormalizeLiteral_LeavesEmbeddedQuotesAlone(t *testing.T) {
	out := normalizeLiteral(`{"note": "it's fine", 'tag': 'x'}`)

	assert.Equal(t, `{"note": "it's fine", "tag": "x"}`, out)
}
