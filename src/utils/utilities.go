package utils

import "strings"

// SanitizeStatName removes invalid characters from the stat name.
func SanitizeStatName(s string) string {
	r := strings.NewReplacer(":", "_", "|", "_", ".", "_")
	return r.Replace(s)
}
