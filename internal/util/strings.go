package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"mvdan.cc/xurls/v2"
)

var (
	urlRegex      = xurls.Relaxed()
	urlEmailIndex = urlRegex.SubexpIndex("relaxedEmail")
	waLinkRegex   = regexp.MustCompile(`(?i)(?:https?:\/\/)?chat\.whatsapp\.com\/+\w{22}`)
)

// MatchURL reports whether s contains a link. Bare email addresses do not
// count.
func MatchURL(s string) bool {
	for _, match := range urlRegex.FindAllStringSubmatch(s, -1) {
		if match[urlEmailIndex] != "" {
			continue
		}
		return true
	}
	return false
}

// MatchWaUrl reports whether s contains a WhatsApp group invite link.
func MatchWaUrl(s string) bool {
	return waLinkRegex.MatchString(s)
}

// NormalizeString strips combining diacritical marks, so accented command
// tokens resolve the same as their plain spellings.
func NormalizeString(s string) string {
	t := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
