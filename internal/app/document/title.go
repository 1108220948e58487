package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title returns the text of the first heading in an enhanced transcript, or
// fallback when the markup has none.
func Title(markup, fallback string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fallback
	}

	for _, selector := range []string{"h1", "h2"} {
		if text := strings.Join(strings.Fields(doc.Find(selector).First().Text()), " "); text != "" {
			return text
		}
	}
	return fallback
}

// Sections lists the h2 headings of an enhanced transcript in document order.
func Sections(markup string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var sections []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			sections = append(sections, text)
		}
	})
	return sections
}
