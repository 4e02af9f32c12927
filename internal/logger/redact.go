package logger

import (
	"strings"
)

const redacted = "***"

// sensitiveNames are matched as substrings of a lower-cased header, query,
// metadata or body key. The value is never inspected.
var sensitiveNames = []string{
	"authorization",
	"cookie",
	"password",
	"secret",
	"token",
	"api-key",
	"apikey",
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, name := range sensitiveNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// maskValue returns value unchanged unless key names a secret.
func maskValue(key, value string) string {
	if isSensitive(key) {
		return redacted
	}
	return value
}
