package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomBasename(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := RandomBasename()
		assert.Len(t, name, 32)
		for _, r := range name {
			assert.Contains(t, basenameChars, string(r))
		}
		assert.False(t, seen[name], "basename collision")
		seen[name] = true
	}
}

func TestURLShape(t *testing.T) {
	c := &Client{bucket: "maeul-media", region: "ap-northeast-2"}
	url := c.URL("post_image/abc123")
	assert.Equal(t, "https://maeul-media.s3.ap-northeast-2.amazonaws.com/post_image/abc123", url)
}

func TestKeyFromURL(t *testing.T) {
	c := &Client{bucket: "maeul-media", region: "ap-northeast-2"}
	key, ok := KeyFromURL(c.URL("post_image/abc123"))
	assert.True(t, ok)
	assert.Equal(t, "post_image/abc123", key)

	_, ok = KeyFromURL("not a url")
	assert.False(t, ok)

	_, ok = KeyFromURL("https://example.com/")
	assert.False(t, ok)
}
