// Package redact strips credentials from strings before they are logged or
// returned in error responses. Provider SDK errors often echo the API key,
// the Authorization header or a request URL carrying a key parameter; this
// package replaces those fragments with placeholders.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

// rule pairs a pattern with its replacement. Replacements may reference
// capture groups.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; the provider-specific key formats run before
// the generic key=value rule so their placeholders are not re-matched.
var rules = []rule{
	// OpenAI style secret keys: sk-..., sk-proj-...
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{16,}`), RedactedKeyPlaceholder},
	// Google API keys
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{30,}`), RedactedKeyPlaceholder},
	// JWTs
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	// Authorization: Bearer <token>
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._~+/\-]{8,}=*`), "${1}" + RedactedCredentialPlaceholder},
	// key=... in URLs and query strings
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// api_key: ..., token=..., secret "..."
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|x-api-key|x-goog-api-key|token|secret|password)(['"]?\s*[:=]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`),
		"${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
