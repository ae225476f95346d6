package protocol

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/finnbear/moderation"
)

const (
	usernameMinLen = 1
	usernameMaxLen = 24
)

// sanitizeUsername strips formatting characters, drops non-printable
// runes, and censors inappropriate text, mirroring mk48's
// server/inbound.go sanitize() for player names.
func sanitizeUsername(text string) string {
	const removals = "()[]{}*"
	for i := 0; i < len(removals); i++ {
		text = strings.ReplaceAll(text, removals[i:i+1], "")
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, text)

	text = trimUtf8(text, usernameMaxLen)
	if utf8.RuneCountInString(text) < usernameMinLen {
		return "wanderer"
	}

	result := moderation.Scan(text)
	if result.Is(moderation.Inappropriate) {
		if result.Is(moderation.Inappropriate & moderation.Severe) {
			return "wanderer"
		}
		text, _ = moderation.Censor(text, moderation.Inappropriate)
	}

	return text
}

func trimUtf8(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}
