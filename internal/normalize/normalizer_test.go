// In file: internal/normalize/normalizer_test.go
package normalize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func emailRecord(i int) map[string]any {
	return map[string]any{
		"sender":  fmt.Sprintf("sender%d@example.com", i),
		"subject": fmt.Sprintf("Subject %d", i),
		"preview": map[string]any{"body": fmt.Sprintf("Body of message %d", i)},
	}
}

func TestResponse_MailFetchRendersThreeWithMoreSuffix(t *testing.T) {
	var emails []any
	for i := 1; i <= 5; i++ {
		emails = append(emails, emailRecord(i))
	}
	result := map[string]any{"data": map[string]any{"emails": emails}}

	out := Response("GMAIL_FETCH_EMAILS", result)

	assert.Contains(t, out, "Found 5 emails")
	assert.Contains(t, out, "sender1@example.com")
	assert.Contains(t, out, "sender3@example.com")
	assert.NotContains(t, out, "sender4@example.com")
	assert.Contains(t, out, "2 more")
}

func TestResponse_MailFetchDataAsList(t *testing.T) {
	result := map[string]any{"data": []any{emailRecord(1)}}

	out := Response("GMAIL_FETCH_EMAILS", result)

	assert.Contains(t, out, "Found 1 emails")
	assert.Contains(t, out, "sender1@example.com")
}

func TestResponse_MailFetchListUnderOtherField(t *testing.T) {
	result := map[string]any{"data": map[string]any{
		"nextPageToken": "tok-123",
		"messages":      []any{emailRecord(1), emailRecord(2)},
	}}

	out := Response("GMAIL_FETCH_EMAILS", result)

	assert.Contains(t, out, "Found 2 emails")
}

func TestResponse_MailFetchEmpty(t *testing.T) {
	result := map[string]any{"data": map[string]any{"emails": []any{}}}

	assert.Contains(t, Response("GMAIL_FETCH_EMAILS", result), "No emails found")
}

func TestResponse_MailFetchShapingFailureKeepsRawData(t *testing.T) {
	// A list result cannot be shaped as an email payload; the diagnostic must
	// still carry a preview of the raw data.
	out := Response("GMAIL_FETCH_EMAILS", []any{"unexpected"})

	assert.Contains(t, out, "Email formatting error")
	assert.Contains(t, out, "unexpected")
}

func TestResponse_MailFetchParsesJSONString(t *testing.T) {
	raw := `{"data": {"emails": [{"sender": "a@x.com", "subject": "Hi", "preview": {"body": "hello"}}]}}`

	out := Response("GMAIL_FETCH_EMAILS", raw)

	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "Hi")
	assert.Contains(t, out, "hello")
}

func TestResponse_CalendarEvents(t *testing.T) {
	var items []any
	for i := 1; i <= 7; i++ {
		items = append(items, map[string]any{
			"summary": fmt.Sprintf("Event %d", i),
			"start":   map[string]any{"dateTime": "2026-02-20T10:00:00Z"},
		})
	}
	result := map[string]any{"items": items}

	out := Response("GOOGLE_CALENDAR_LIST_EVENTS", result)

	assert.Contains(t, out, "Found 7 calendar events")
	assert.Contains(t, out, "Event 5")
	assert.NotContains(t, out, "Event 6")
	assert.Contains(t, out, "2 more events")
	assert.Contains(t, out, "2026-02-20T10:00:00Z")
}

func TestResponse_CalendarTimeFallbacks(t *testing.T) {
	allDay := map[string]any{"items": []any{
		map[string]any{"summary": "All day", "start": map[string]any{"date": "2026-02-21"}},
	}}
	assert.Contains(t, Response("GOOGLE_CALENDAR_LIST_EVENTS", allDay), "Time: 2026-02-21")

	noStart := map[string]any{"items": []any{map[string]any{"summary": "Sometime"}}}
	assert.Contains(t, Response("GOOGLE_CALENDAR_LIST_EVENTS", noStart), "Time: TBD")
}

func TestResponse_CalendarWithoutItemsFallsBackToRaw(t *testing.T) {
	result := map[string]any{"kind": "calendar#settings"}

	assert.Equal(t, `{"kind":"calendar#settings"}`, Response("GOOGLE_CALENDAR_GET_SETTINGS", result))
}

func TestResponse_DriveFileListing(t *testing.T) {
	result := map[string]any{"files": []any{
		map[string]any{"name": "notes.txt", "id": "f1", "mimeType": "text/plain"},
		map[string]any{"name": "Projects", "id": "f2", "mimeType": "application/vnd.google-apps.folder"},
		map[string]any{"name": "photo.png", "id": "f3", "mimeType": "image/png"},
	}}

	out := Response("GDRIVE_SEARCH_FILES", result)

	assert.Contains(t, out, "Found 3 items on Google Drive")
	assert.Contains(t, out, "📄 notes.txt")
	assert.Contains(t, out, "📁 Projects")
	assert.Contains(t, out, "📎 photo.png")
	assert.Contains(t, out, "ID: f1")
}

func TestResponse_DriveSingleFile(t *testing.T) {
	result := map[string]any{
		"name":        "report.pdf",
		"id":          "f9",
		"mimeType":    "application/pdf",
		"webViewLink": "https://drive.example/f9",
	}

	out := Response("GDRIVE_GET_FILE", result)

	assert.Contains(t, out, "File: report.pdf")
	assert.Contains(t, out, "Link: https://drive.example/f9")
}

func TestResponse_DriveMatchesBySubstring(t *testing.T) {
	result := map[string]any{"files": []any{map[string]any{"name": "a", "id": "1"}}}

	assert.Contains(t, Response("googledrive_list", result), "Google Drive")
}

func TestResponse_DefaultFamilyReturnsRawString(t *testing.T) {
	assert.Equal(t, "anything", Response("SLACK_SEND_MESSAGE", "anything"))
	assert.Equal(t, `{"ok":true}`, Response("SLACK_SEND_MESSAGE", map[string]any{"ok": true}))
}

func TestResponse_UnparseableJSONStringStaysRaw(t *testing.T) {
	broken := `{"not": json`

	assert.Equal(t, broken, Response("SLACK_SEND_MESSAGE", broken))
}

func TestRenderSingleEmail_RoundTrip(t *testing.T) {
	email := map[string]any{
		"sender":      "a@x.com",
		"subject":     "Hi",
		"to":          "b@x.com",
		"messageText": "hello world",
	}

	out := RenderSingleEmail(email)

	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "Hi")
	assert.Contains(t, out, "b@x.com")
	assert.Contains(t, out, "hello world")
}

func TestEmailPreview_TruncatesLongBodies(t *testing.T) {
	email := map[string]any{
		"preview": map[string]any{"body": strings.Repeat("x", 300)},
	}

	assert.Len(t, EmailPreview(email, 80), 80)
}
