package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text strips all markup, for titles, captions and profile fields.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Rich keeps safe formatting in article bodies.
func Rich(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
