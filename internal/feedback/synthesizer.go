// In file: internal/feedback/synthesizer.go

// Package feedback turns tool execution failures into diagnostic text the
// reasoning loop can act on.
//
// The loop has no mechanism to catch errors; its only retry path is reading
// an observation and trying again with corrected arguments. The synthesizer
// therefore mines the error message for the offending field names (remote
// SDKs quote them in single quotes), mines the action's description for
// likely parameters, and composes both into a single guidance block.
package feedback

import (
	"fmt"
	"regexp"
	"strings"

	"toolbridge/internal/hints"
	"toolbridge/internal/normalize"
)

// quotedFieldPattern extracts single-quoted substrings from error messages,
// which is how the remote SDK names missing or invalid fields.
var quotedFieldPattern = regexp.MustCompile(`'([^']+)'`)

// maxMissingFields caps how many mined field names are reported.
const maxMissingFields = 5

// Synthesize composes the diagnostic observation for one failed tool call.
// The output always contains some guidance for a retry: the mined missing
// fields when the error names any, the description-derived parameter hints
// when available, and otherwise a truncated copy of the raw description.
func Synthesize(action, errText, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ %s failed\n\n", action)
	fmt.Fprintf(&b, "Error: %s\n\n", normalize.Truncate(errText, 200))

	if missing := missingFields(errText); len(missing) > 0 {
		fmt.Fprintf(&b, "💡 Missing fields: %s\n", strings.Join(missing, ", "))
	}

	if suggested := hints.ExtractParams(description); len(suggested) > 0 {
		fmt.Fprintf(&b, "💡 Suggested parameters: %s\n", strings.Join(suggested, ", "))
	} else {
		fmt.Fprintf(&b, "💡 Tool description: %s...\n", normalize.Truncate(description, 200))
	}

	return b.String()
}

// missingFields returns up to 5 single-quoted substrings from the error text.
func missingFields(errText string) []string {
	matches := quotedFieldPattern.FindAllStringSubmatch(errText, -1)
	var fields []string
	for _, m := range matches {
		fields = append(fields, m[1])
		if len(fields) == maxMissingFields {
			break
		}
	}
	return fields
}
