package util

import "strings"

// Truthy interprets an environment-variable style boolean: "true",
// "1" and "yes" count, anything else does not.
func Truthy(s string) bool {
	normalized := strings.ToLower(strings.Trim(s, " "))
	return normalized == "true" || normalized == "1" || normalized == "yes"
}
