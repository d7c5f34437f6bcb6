package news

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const excerptLength = 200

// PlainText strips markup from an article body.
func PlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.TrimSpace(body)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// DeriveExcerpt builds an excerpt from the body, cut on a word boundary.
func DeriveExcerpt(body string) string {
	text := PlainText(body)
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:excerptLength])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
