package stringsx

import "strings"

// CutLast slices s around the last instance of sep, returning the text
// before and after it. The found result reports whether sep appears in s.
func CutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}

	return s[:i], s[i+len(sep):], true
}
