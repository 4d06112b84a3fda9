// Package email canonicalizes email addresses so that differently formatted
// spellings of one address compare equal.
//
// The domain cleanup rules are heuristics. A normalized address is a stable
// comparison key, not a guarantee that two accounts belong to different people.
// Punycode conversion and alias stripping (user+tag@) are not performed.
package email

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidFormat is returned when the input cannot be split into a local
// part and a domain at exactly one '@'.
var ErrInvalidFormat = errors.New("invalid email format")

// Rule rewrites a lowercased, trimmed domain.
type Rule struct {
	Name  string
	Apply func(domain string) string
}

var (
	dotComSuffix   = regexp.MustCompile(`\.com[a-z0-9]+$`)
	gmailDigitsPfx = regexp.MustCompile(`^[0-9]+gmail\.com$`)
)

// DomainRules are applied in order by Normalize.
var DomainRules = []Rule{
	{Name: "collapse-dot-com", Apply: CollapseDotCom},
	{Name: "strip-gmail-digits", Apply: StripGmailDigits},
}

// CollapseDotCom drops characters appended after a trailing ".com",
// e.g. "gmail.comx" becomes "gmail.com".
func CollapseDotCom(domain string) string {
	return dotComSuffix.ReplaceAllString(domain, ".com")
}

// StripGmailDigits removes a numeric prefix typed in front of gmail.com,
// e.g. "123gmail.com" becomes "gmail.com".
func StripGmailDigits(domain string) string {
	if gmailDigitsPfx.MatchString(domain) {
		return "gmail.com"
	}
	return domain
}

// Normalize returns the canonical form of raw: trimmed, lowercased, with the
// domain cleaned up by DomainRules. Normalize is idempotent.
func Normalize(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))

	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return "", ErrInvalidFormat
	}
	local, domain := addr[:at], addr[at+1:]
	if strings.Contains(local, "@") {
		return "", ErrInvalidFormat
	}

	domain = strings.TrimLeftFunc(domain, unicode.IsSpace)
	domain = strings.TrimRightFunc(domain, isTrailingJunk)
	for _, r := range DomainRules {
		domain = r.Apply(domain)
	}

	return local + "@" + domain, nil
}

// isTrailingJunk matches the dots and whitespace stripped from the end of a
// domain, in any interleaving.
func isTrailingJunk(r rune) bool {
	return r == '.' || unicode.IsSpace(r)
}

// Domain returns the part of addr after the last '@', or "" if there is none.
func Domain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return ""
	}
	return addr[at+1:]
}
