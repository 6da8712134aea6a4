package lessonplan

import "regexp"

// Blacklist patterns, applied in this order. RE2 has no lookahead, so the
// block patterns use a lazy match up to the first closing tag.
var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeBlockRe  = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize strips script blocks, iframe blocks, javascript: schemes and inline
// event-handler attributes from model output.
//
// This is a blacklist, not an HTML parser: it removes the matched text and
// nothing else, so unclosed tags and encoded payloads pass through. Passes
// repeat until the output is stable, which makes Sanitize idempotent and
// guarantees no pattern survives a removal that splices two halves together.
func Sanitize(html string) string {
	for {
		next := sanitizePass(html)
		if next == html {
			return next
		}
		html = next
	}
}

func sanitizePass(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = iframeBlockRe.ReplaceAllString(s, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return s
}
