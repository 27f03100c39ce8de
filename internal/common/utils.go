package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Words splits free text into its whitespace-separated words.
func Words(s string) []string {
	return strings.Fields(s)
}
