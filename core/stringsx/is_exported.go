package stringsx

import (
	"unicode"
	"unicode/utf8"
)

// IsExported reports whether name starts with an upper-case letter and is
// therefore reachable through reflection.
func IsExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
