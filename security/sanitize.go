package security

import "strings"

// MaxMessageLength caps sanitized sign-message text, in runes.
const MaxMessageLength = 10000

// SanitizeMessage strips control characters from a message and truncates
// it to MaxMessageLength runes. Removed ranges are C0 (U+0000..U+001F,
// which includes tab and newline), DEL, and C1 (U+007F..U+009F).
// Sanitizing an already sanitized message returns it unchanged.
func SanitizeMessage(message string) string {
	var b strings.Builder
	b.Grow(len(message))

	kept := 0
	for _, r := range message {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		if kept == MaxMessageLength {
			break
		}
		b.WriteRune(r)
		kept++
	}
	return b.String()
}
