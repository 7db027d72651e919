// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from client-supplied text before
// it enters the message store. Chat text gets the strict policy (no
// tags at all); announcement bodies keep basic formatting.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	rich   = bluemonday.UGCPolicy()
)

// Text removes all HTML from a chat message body.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Rich keeps user-generated-content formatting (bold, lists, links)
// for announcement bodies while dropping scripts and event handlers.
func Rich(s string) string {
	return strings.TrimSpace(rich.Sanitize(s))
}
