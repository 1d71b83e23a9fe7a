package differ

import "strings"

// SplitLines splits content on "\n". A trailing newline does not produce an
// extra empty line and empty content yields no lines. "\r" is kept, so CRLF
// content diffs exactly as stored.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
