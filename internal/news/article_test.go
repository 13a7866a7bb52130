package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleKey(t *testing.T) {
	key := TitleKey("Breaking News: Markets Rally After Fed Decision")
	assert.Equal(t, "breaking news: markets rally after fed decision", key)

	// Only the first ten tokens count, so trailing differences collapse.
	long1 := TitleKey("one two three four five six seven eight nine ten eleven")
	long2 := TitleKey("one two three four five six seven eight nine ten twelve")
	assert.Equal(t, long1, long2)

	// Whitespace variations normalize away.
	assert.Equal(t, TitleKey("Hello   World"), TitleKey("hello world"))

	assert.Equal(t, "", TitleKey(""))
}

func TestTextConcatenatesTitleAndSummary(t *testing.T) {
	a := Article{Title: "Title here", Summary: "summary here"}
	assert.Equal(t, "Title here summary here", a.Text())

	onlyTitle := Article{Title: "Just a title"}
	assert.Equal(t, "Just a title", onlyTitle.Text())
}

func TestDisplaySummaryPrefersAISummary(t *testing.T) {
	a := Article{Summary: "raw", AISummary: "generated"}
	assert.Equal(t, "generated", a.DisplaySummary())

	a.AISummary = ""
	assert.Equal(t, "raw", a.DisplaySummary())
}

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()

	assert.True(t, s.Add("https://example.com/a"))
	assert.False(t, s.Add("https://example.com/a"), "second add of same URL must report dup")
	assert.True(t, s.Add("https://example.com/b"))

	// Empty URLs are never admitted.
	assert.False(t, s.Add(""))

	assert.Equal(t, 2, s.Len())
}
