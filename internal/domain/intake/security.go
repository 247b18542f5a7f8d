package intake

import "regexp"

// Injection patterns checked against free-text input. Script injection and
// SQL keyword patterns are both treated as hard validation errors here,
// unlike the HTTP middleware where SQL patterns only log a warning: intake
// text is persisted and redisplayed, so it is held to the stricter bar.
var (
	scriptPatterns = regexp.MustCompile(`(?i)(<script|javascript\s*:|on\w+\s*=)`)
	sqlPatterns    = regexp.MustCompile(`(?i)('+\s*;\s*DROP\b|UNION\s+SELECT\b|'\s+OR\s+1\s*=\s*1|1\s*=\s*1)`)
)

// unsafeText reports whether the value matches a known injection pattern.
func unsafeText(s string) bool {
	return scriptPatterns.MatchString(s) || sqlPatterns.MatchString(s)
}

// unsafeInput scans every free-text field of the request.
func unsafeInput(req Request) (field string, found bool) {
	if unsafeText(req.Notes()) {
		return "notes", true
	}
	category, symptoms := req.Complaint()
	if unsafeText(category) {
		return "complaint_category", true
	}
	for _, s := range symptoms {
		if unsafeText(s) {
			return "symptoms", true
		}
	}
	return "", false
}
