package analyzer

import "strings"

// nameOverrides fixes the casing of terms that plain title-casing would
// mangle in synthesized names.
var nameOverrides = map[string]string{
	"http":       "HTTP",
	"api":        "API",
	"webhook":    "Webhook",
	"automation": "Automation",
	"automate":   "Automate",
	"scheduled":  "Scheduled",
	"triggered":  "Triggered",
	"manual":     "Manual",
}

// FormatName converts a corpus filename into a readable workflow name:
// "0001_slack_http_backup.json" becomes "Slack HTTP Backup".
func FormatName(filename string) string {
	name := strings.TrimSuffix(filename, ".json")
	parts := strings.Split(name, "_")

	// A leading pure-numeric segment is a corpus sequence number, not a word.
	if len(parts) > 1 && isDigits(parts[0]) {
		parts = parts[1:]
	}

	readable := make([]string, 0, len(parts))
	for _, part := range parts {
		if override, ok := nameOverrides[strings.ToLower(part)]; ok {
			readable = append(readable, override)
		} else {
			readable = append(readable, titleCase(part))
		}
	}
	return strings.Join(readable, " ")
}

// workflowName prefers the document's own name when it is meaningful:
// non-empty, not just the filename again, and not an editor placeholder.
// Otherwise the name is synthesized from the filename.
func workflowName(filename, docName string) string {
	docName = strings.TrimSpace(docName)
	stem := strings.TrimSuffix(filename, ".json")
	if docName != "" && docName != stem && !strings.HasPrefix(docName, "My workflow") {
		return docName
	}
	return FormatName(filename)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
