package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup reduces a feed summary to plain text. Feed descriptions
// routinely carry HTML fragments; goquery parses them and Text()
// collapses the node tree.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}
	return collapseWhitespace(doc.Text())
}

// Truncate cuts on a rune boundary so multi-byte text is never split.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
