// Package markup provides the text escaping used by markup display surfaces.
package markup

import "strings"

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces & < > " ' with their entity equivalents and passes
// every other character through. It must be applied exactly once to
// literal text; escaping its own output escapes the ampersands again.
func Escape(s string) string {
	return replacer.Replace(s)
}
