package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilterAllowsNormalText(t *testing.T) {
	cf := NewContentFilter()

	for _, text := range []string{
		"Anyone up for a walk by the river this evening?",
		"Lost a black umbrella near the bus stop, please reach out here.",
		"",
	} {
		ok, reason := cf.Check(text)
		assert.True(t, ok, "text %q should pass, got reason %q", text, reason)
	}
}

func TestContentFilterRejectsBannedWords(t *testing.T) {
	cf := NewContentFilter()

	ok, reason := cf.Check("this is such bullshit")
	assert.False(t, ok)
	assert.Equal(t, "inappropriate_language", reason)

	// Word boundary: "assistant" contains "ass" but is fine.
	ok, _ = cf.Check("looking for an assistant for the weekend market")
	assert.True(t, ok)
}

func TestContentFilterRejectsURLs(t *testing.T) {
	cf := NewContentFilter()

	for _, text := range []string{
		"check out https://example.com/deals",
		"visit www.cheap-stuff.net today",
	} {
		ok, reason := cf.Check(text)
		assert.False(t, ok, "text %q should be rejected", text)
		assert.Equal(t, "url_not_allowed", reason)
	}
}

func TestContentFilterRejectsContactInfo(t *testing.T) {
	cf := NewContentFilter()

	ok, reason := cf.Check("mail me at someone@example.org")
	assert.False(t, ok)
	assert.Equal(t, "contact_info_not_allowed", reason)

	ok, reason = cf.Check("call 010-1234-5678 anytime")
	assert.False(t, ok)
	assert.Equal(t, "contact_info_not_allowed", reason)
}

func TestContentFilterRejectsSpam(t *testing.T) {
	cf := NewContentFilter()

	ok, reason := cf.Check("helloooooo neighbours!!!!")
	assert.False(t, ok)
	assert.Equal(t, "spam_detected", reason)
}

func TestRejectionMessageFallback(t *testing.T) {
	cf := NewContentFilter()

	assert.Equal(t, "URLs and web links are not allowed.", cf.RejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your post does not meet our content guidelines.", cf.RejectionMessage("unknown_reason"))
}
