// In file: internal/hints/extractor.go

// Package hints extracts likely parameter names from free-text tool
// descriptions.
//
// Remote actions carry no parameter schema, only prose. This package runs a
// fixed set of regex patterns over that prose to guess which argument names a
// call probably needs. The output is advisory only: nothing in the gateway
// depends on its correctness, only on its termination and its size bound.
package hints

import (
	"regexp"
	"strings"
)

// maxParams caps the number of candidate names returned.
const maxParams = 5

// The ordered pattern rules. Clause-capturing rules grab the remainder of the
// sentence after a introducing keyword; the vocabulary rule matches common
// identifier names anywhere in the text as whole words.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:requires?|needs?|parameters?)\s*:?\s*([^.]+)`),
	regexp.MustCompile(`(?i)(?:pass|provide|input)\s*:?\s*([^.]+)`),
	regexp.MustCompile(`(?i)\b(calendarId|calendar_id|eventId|event_id|messageId|message_id|userId|user_id)\b`),
}

var tokenSplitter = regexp.MustCompile(`[,\s]+`)

// ExtractParams returns up to 5 candidate parameter names mined from the
// description. An empty description yields an empty result. The order of the
// returned names is not significant.
func ExtractParams(description string) []string {
	if description == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var params []string
	for _, pattern := range descriptionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(description, -1) {
			for _, token := range tokenSplitter.Split(match[1], -1) {
				token = strings.Trim(token, "()[]{}")
				if len(token) <= 2 {
					continue
				}
				if _, ok := seen[token]; ok {
					continue
				}
				seen[token] = struct{}{}
				params = append(params, token)
			}
		}
	}

	if len(params) > maxParams {
		params = params[:maxParams]
	}
	return params
}
