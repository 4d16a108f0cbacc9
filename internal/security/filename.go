// Package security holds helpers for turning untrusted identifiers into
// values that are safe to use on the filesystem.
package security

import "strings"

// maxFilenameLen bounds sanitised names to keep output paths short.
const maxFilenameLen = 128

// SanitizeFilename makes a safe file name component from an arbitrary
// dataset identifier. Runs of characters other than ASCII letters, digits,
// dot, underscore or dash collapse to a single underscore, and leading or
// trailing dots and underscores are trimmed so the result can never be a
// relative path element. It returns "" when nothing usable remains.
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxFilenameLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "._")
}
