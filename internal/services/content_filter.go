package services

import (
	"regexp"
	"sync"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"retard", "retarded",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ContentFilter screens post and comment text before publication.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	compiled            bool
	mu                  sync.RWMutex
}

func NewContentFilter() *ContentFilter {
	cf := &ContentFilter{}
	cf.compilePatterns()
	return cf
}

func (cf *ContentFilter) compilePatterns() {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	if cf.compiled {
		return
	}

	cf.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			cf.bannedWordRegexps = append(cf.bannedWordRegexps, re)
		}
	}

	cf.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	cf.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	cf.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3,4}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	cf.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
	cf.compiled = true
}

// Check returns whether text is publishable and, when it is not, the
// rejection reason.
func (cf *ContentFilter) Check(text string) (bool, string) {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range cf.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if cf.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if cf.emailPattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if cf.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if cf.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

// RejectionMessage maps a rejection reason to a user-facing message.
func (cf *ContentFilter) RejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "Your post contains inappropriate language.",
		"url_not_allowed":          "URLs and web links are not allowed.",
		"contact_info_not_allowed": "Contact information is not allowed.",
		"spam_detected":            "Your post appears to be spam.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your post does not meet our content guidelines."
}
