// Package redact scrubs credentials, stored values and SQL text from error
// messages before they are logged. Database drivers echo connection strings,
// offending key values and query fragments in their errors; none of that
// belongs in a log line.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	DSNPlaceholder        = "[REDACTED_DSN]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	ValuePlaceholder      = "[REDACTED_VALUE]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	// go-sql-driver/mysql DSN: user:pass@tcp(host:port)
	{regexp.MustCompile(`[\w.-]+:[^@\s]*@(?:tcp|unix)\([^)]*\)`), DSNPlaceholder},
	// URL-style DSN userinfo
	{
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|mongodb)://[^@/\s]+@`),
		"${1}://" + CredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s]+['"]?`),
		"${1}${2}" + CredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret)(\s*[=:]\s*)['"]?[A-Za-z0-9_\-.~+/]{8,}['"]?`),
		"${1}${2}" + KeyPlaceholder,
	},
	// PostgreSQL constraint detail: Key (name)=(lamp)
	{regexp.MustCompile(`Key \(([^)]*)\)=\([^)]*\)`), "Key (${1})=(" + ValuePlaceholder + ")"},
	// MySQL 1062: Duplicate entry 'lamp'
	{regexp.MustCompile(`(?i)Duplicate entry '[^']*'`), "Duplicate entry '" + ValuePlaceholder + "'"},
	{regexp.MustCompile(`\b(?:SELECT|INSERT INTO|UPDATE|DELETE FROM)\b[^;\n]*`), SQLPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(^|\s)(?:/[\w.-]+){2,}`), "${1}" + PathPlaceholder},
	{regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`), StackPlaceholder},
}

// String redacts sensitive fragments from input.
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

// Error redacts sensitive fragments from err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
