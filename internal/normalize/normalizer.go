// In file: internal/normalize/normalizer.go

// Package normalize converts raw, tool-family-specific execution results into
// compact human-readable summaries for the reasoning loop.
//
// Dispatch is driven by a small ordered table mapping match predicates on the
// action's stable identity (exact, prefix, substring) to render functions,
// with an explicit raw-string default. Adding a new tool family is a data
// change, not a control-flow change.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// actionMailFetch is the one action rendered by exact identity match; the
// remaining families match by prefix or substring.
const actionMailFetch = "GMAIL_FETCH_EMAILS"

// familyRule pairs a match predicate on the action identity with the renderer
// for that tool family. Rules are evaluated in priority order; the first
// match wins.
type familyRule struct {
	match  func(action string) bool
	render func(result any) string
}

var familyRules = []familyRule{
	{
		match:  func(action string) bool { return action == actionMailFetch },
		render: renderMailFetch,
	},
	{
		match:  func(action string) bool { return strings.HasPrefix(action, "GOOGLE_CALENDAR_") },
		render: renderCalendar,
	},
	{
		match: func(action string) bool {
			return strings.HasPrefix(action, "GDRIVE_") || strings.Contains(strings.ToLower(action), "drive")
		},
		render: renderDrive,
	},
}

// Response renders the raw result of one tool execution as human-readable
// text. Results that arrive as JSON-looking strings are opportunistically
// parsed before family dispatch. Normalization never fails upward: any family
// that cannot shape its input degrades to the raw string form of the result.
func Response(action string, result any) string {
	result = maybeParseJSON(result)
	for _, rule := range familyRules {
		if rule.match(action) {
			return rule.render(result)
		}
	}
	return Stringify(result)
}

// maybeParseJSON decodes string results that look like JSON documents so the
// family renderers see structured data. A parse failure leaves the value
// untouched; the renderers degrade to raw-string output on their own.
func maybeParseJSON(result any) any {
	s, ok := result.(string)
	if !ok {
		return result
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return result
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return result
	}
	return parsed
}

// Stringify returns the raw string form of a result: strings pass through,
// structured values are re-encoded as compact JSON so no information is lost.
func Stringify(result any) string {
	if s, ok := result.(string); ok {
		return s
	}
	if encoded, err := json.Marshal(result); err == nil {
		return string(encoded)
	}
	return fmt.Sprintf("%v", result)
}

// --- Mail family ---

// renderMailFetch shapes the mail-fetch payload into at most 3 readable
// blocks. A failure to locate or shape the records must never lose the
// underlying data, so it falls back to a diagnostic that embeds a truncated
// preview of the raw result.
func renderMailFetch(result any) string {
	emails, err := findEmailList(result)
	if err != nil {
		return fmt.Sprintf("❌ Email formatting error: %v\n\nResult: %s", err, Truncate(Stringify(result), 500))
	}
	if len(emails) == 0 {
		return "❌ No emails found"
	}
	return RenderEmailList(emails, 3, 80, 40)
}

// findEmailList hunts for the list of message records inside the execution
// payload. The provider has shipped this list in several shapes over time, so
// the lookup tries, in order: data.emails, data as a bare list, and the first
// non-empty list-valued field under data (skipping the pagination token).
func findEmailList(result any) ([]any, error) {
	root, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object result, got %T", result)
	}

	switch data := root["data"].(type) {
	case map[string]any:
		if emails, ok := data["emails"].([]any); ok {
			return emails, nil
		}
		for key, value := range data {
			if key == "nextPageToken" {
				continue
			}
			if list, ok := value.([]any); ok && len(list) > 0 {
				return list, nil
			}
		}
		return nil, nil
	case []any:
		return data, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected type %T for 'data' field", data)
	}
}

// RenderEmailList renders up to maxShown message records as From / Subject /
// Preview blocks, with a "+N more" suffix when the list is longer. It is
// shared with the output post-processor, which re-applies the same shaping to
// payloads that leaked through the reasoning loop unformatted.
func RenderEmailList(emails []any, maxShown, previewLimit, ruleWidth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📧 Found %d emails:\n\n", len(emails))
	for i, entry := range emails {
		if i >= maxShown {
			break
		}
		email, _ := entry.(map[string]any)
		fmt.Fprintf(&b, "From: %s\n", stringField(email, "sender", "Unknown"))
		fmt.Fprintf(&b, "Subject: %s\n", stringField(email, "subject", "No subject"))
		fmt.Fprintf(&b, "Preview: %s...\n", EmailPreview(email, previewLimit))
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	}
	if len(emails) > maxShown {
		fmt.Fprintf(&b, "... and %d more emails", len(emails)-maxShown)
	}
	return b.String()
}

// RenderSingleEmail renders one message record as a compact From / Subject /
// To / Preview block. Used by the output post-processor for single-email
// payloads.
func RenderSingleEmail(email map[string]any) string {
	var b strings.Builder
	b.WriteString("📧 Email found:\n\n")
	fmt.Fprintf(&b, "From: %s\n", stringField(email, "sender", "Unknown"))
	fmt.Fprintf(&b, "Subject: %s\n", stringField(email, "subject", "No subject"))
	fmt.Fprintf(&b, "To: %s\n", stringField(email, "to", "Unknown"))
	fmt.Fprintf(&b, "Preview: %s...\n", EmailPreview(email, 150))
	return b.String()
}

// EmailPreview extracts the record's body preview: preview.body when the
// preview is an object, otherwise the stringified preview, otherwise the raw
// messageText. Truncated to limit characters.
func EmailPreview(email map[string]any, limit int) string {
	switch preview := email["preview"].(type) {
	case map[string]any:
		body, _ := preview["body"].(string)
		return Truncate(body, limit)
	case nil:
		if text, ok := email["messageText"].(string); ok {
			return Truncate(text, limit)
		}
		return ""
	default:
		return Truncate(Stringify(preview), limit)
	}
}

// --- Calendar family ---

// renderCalendar shapes an events payload into at most 5 Event / Time blocks.
// Anything that does not carry an "items" list degrades to the raw string
// form.
func renderCalendar(result any) string {
	root, ok := result.(map[string]any)
	if !ok {
		return Stringify(result)
	}
	items, ok := root["items"].([]any)
	if !ok {
		return Stringify(result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Found %d calendar events:\n\n", len(items))
	for i, entry := range items {
		if i >= 5 {
			break
		}
		event, _ := entry.(map[string]any)
		fmt.Fprintf(&b, "Event: %s\n", stringField(event, "summary", "No title"))
		fmt.Fprintf(&b, "Time: %s\n", eventTime(event))
		if desc, ok := event["description"].(string); ok && desc != "" {
			fmt.Fprintf(&b, "Description: %s...\n", Truncate(desc, 80))
		}
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}
	if len(items) > 5 {
		fmt.Fprintf(&b, "\n... and %d more events", len(items)-5)
	}
	return b.String()
}

// eventTime prefers the exact start.dateTime, falls back to the all-day
// start.date, and finally to "TBD".
func eventTime(event map[string]any) string {
	start, _ := event["start"].(map[string]any)
	if t, ok := start["dateTime"].(string); ok && t != "" {
		return t
	}
	if d, ok := start["date"].(string); ok && d != "" {
		return d
	}
	return "TBD"
}

// --- Drive family ---

// renderDrive shapes a file-listing payload (≤10 entries shown) or a single
// file object; everything else degrades to the raw string form.
func renderDrive(result any) string {
	root, ok := result.(map[string]any)
	if !ok {
		return Stringify(result)
	}

	if files, ok := root["files"].([]any); ok {
		var b strings.Builder
		fmt.Fprintf(&b, "📁 Found %d items on Google Drive:\n\n", len(files))
		for i, entry := range files {
			if i >= 10 {
				break
			}
			file, _ := entry.(map[string]any)
			fmt.Fprintf(&b, "%s %s\n", fileIcon(file), stringField(file, "name", "Unnamed"))
			if desc, ok := file["description"].(string); ok && desc != "" {
				fmt.Fprintf(&b, "   Description: %s...\n", Truncate(desc, 60))
			}
			fmt.Fprintf(&b, "   ID: %s\n", stringField(file, "id", "N/A"))
			b.WriteString(strings.Repeat("-", 40) + "\n")
		}
		if len(files) > 10 {
			fmt.Fprintf(&b, "\n... and %d more items", len(files)-10)
		}
		return b.String()
	}

	if _, ok := root["name"]; ok {
		var b strings.Builder
		fmt.Fprintf(&b, "📄 File: %s\n", stringField(root, "name", "Unknown"))
		fmt.Fprintf(&b, "ID: %s\n", stringField(root, "id", "N/A"))
		fmt.Fprintf(&b, "Type: %s\n", stringField(root, "mimeType", "N/A"))
		if link, ok := root["webViewLink"].(string); ok && link != "" {
			fmt.Fprintf(&b, "Link: %s\n", link)
		}
		return b.String()
	}

	return Stringify(result)
}

// fileIcon picks a display icon from the file's mime type: text documents,
// folders, and everything else.
func fileIcon(file map[string]any) string {
	mime, _ := file["mimeType"].(string)
	switch {
	case strings.HasPrefix(mime, "text"):
		return "📄"
	case strings.Contains(strings.ToLower(mime), "folder"):
		return "📁"
	default:
		return "📎"
	}
}

// --- Shared helpers ---

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	if v, ok := m[key]; ok && v != nil {
		return Stringify(v)
	}
	return fallback
}

// Truncate caps a string at n bytes.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
