// In file: internal/postprocess/postprocess.go

// Package postprocess salvages readable answers from reasoning-loop output
// that leaked a raw provider payload.
//
// Small local models occasionally paste a whole mail-fetch response into
// their final answer instead of summarizing it. Sanitize detects the two
// Gmail field names that betray such a leak, digs the JSON-looking span out
// of the text, and re-applies the normalizer's single/list email shaping.
// Every step is strictly best-effort: any failure returns the original text
// unchanged.
package postprocess

import (
	"encoding/json"
	"regexp"
	"strings"

	"toolbridge/internal/normalize"
)

// The literal markers that indicate an unformatted Gmail payload made it into
// the final answer.
var leakMarkers = []string{"messageText", "labelIds"}

// braceSpanPattern greedily captures the first top-level brace-delimited span,
// across newlines.
var braceSpanPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Sanitize inspects the reasoning loop's final answer and, when a raw mail
// payload leaked through, replaces it with the normalizer's email rendering.
// Text without leak markers is returned byte-for-byte unchanged, as is any
// text the salvage path fails to improve.
func Sanitize(output string) string {
	leaked := false
	for _, marker := range leakMarkers {
		if strings.Contains(output, marker) {
			leaked = true
			break
		}
	}
	if !leaked {
		return output
	}

	span := braceSpanPattern.FindString(output)
	if span == "" {
		return output
	}
	payload, ok := parseStructuredSpan(span)
	if !ok {
		return output
	}

	// A payload with both a sender and a subject is a single message record.
	_, hasSender := payload["sender"]
	_, hasSubject := payload["subject"]
	if hasSender && hasSubject {
		return normalize.RenderSingleEmail(payload)
	}

	if emails := findLeakedEmails(payload); len(emails) > 0 {
		return normalize.RenderEmailList(emails, 5, 100, 50)
	}

	return output
}

// parseStructuredSpan decodes a brace-delimited span first as JSON, then —
// on failure — through a permissive fallback that accepts Python-style
// literals (single-quoted strings, True/False/None).
func parseStructuredSpan(span string) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(span), &payload); err == nil {
		return payload, true
	}
	if err := json.Unmarshal([]byte(normalizeLiteral(span)), &payload); err == nil {
		return payload, true
	}
	return nil, false
}

// findLeakedEmails looks for an email list under data.emails, then under a
// top-level emails field.
func findLeakedEmails(payload map[string]any) []any {
	if data, ok := payload["data"].(map[string]any); ok {
		if emails, ok := data["emails"].([]any); ok {
			return emails
		}
	}
	if emails, ok := payload["emails"].([]any); ok {
		return emails
	}
	return nil
}

var (
	pythonTrue  = regexp.MustCompile(`\bTrue\b`)
	pythonFalse = regexp.MustCompile(`\bFalse\b`)
	pythonNone  = regexp.MustCompile(`\bNone\b`)
)

// normalizeLiteral rewrites a Python-dict-style literal into JSON: keyword
// constants are lowered and single-quoted strings become double-quoted. The
// quote rewrite walks the span once so quotes inside double-quoted strings
// are left alone.
func normalizeLiteral(span string) string {
	span = pythonTrue.ReplaceAllString(span, "true")
	span = pythonFalse.ReplaceAllString(span, "false")
	span = pythonNone.ReplaceAllString(span, "null")

	var b strings.Builder
	inDouble := false
	inSingle := false
	for i := 0; i < len(span); i++ {
		c := span[i]
		switch {
		case c == '\\' && i+1 < len(span):
			b.WriteByte(c)
			i++
			b.WriteByte(span[i])
		case c == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(c)
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
