package services

import (
	"regexp"
	"strings"
)

var bannedWords = []string{
	"fuck", "fucking", "shit", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"spam", "scam", "scammer", "phishing",
}

// ContentFilter screens free-text fields (activity descriptions, reject
// reasons) for profanity, injected links and spam before they are stored.
type ContentFilter struct {
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		urlPattern: regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
	}
	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(bannedWords))
	for _, word := range bannedWords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}
	return f
}

// Check returns (true, "") for acceptable text, or (false, reason) when the
// text must be rejected.
func (f *ContentFilter) Check(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if hasRepeatedRun(text, 6) {
		return false, "spam_detected"
	}
	return true, ""
}

// hasRepeatedRun reports whether text contains n or more identical
// consecutive runes.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// RejectionMessage maps a filter reason to a user-facing explanation.
func (f *ContentFilter) RejectionMessage(reason string) string {
	switch reason {
	case "inappropriate_language":
		return "Your submission contains inappropriate language."
	case "url_not_allowed":
		return "Web links are not allowed in descriptions."
	case "spam_detected":
		return "Your submission appears to be spam."
	default:
		return "Your submission was rejected."
	}
}
