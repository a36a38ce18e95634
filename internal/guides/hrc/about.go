package hrc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/pbg/internal/parser"
)

// parseAbout checks the heading and joins the plain-text paragraphs.
func parseAbout(content *goquery.Selection) (string, error) {
	heading, err := parser.FirstString(content, "h1")
	if err != nil {
		return "", err
	}
	if err := parser.ExpectText("about page heading", heading, "about the guide"); err != nil {
		return "", err
	}

	var paragraphs []string
	content.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
		s, ok := parser.SelectionString(p)
		if !ok {
			return
		}
		if s = parser.FixWhitespace(s); s != "" {
			paragraphs = append(paragraphs, s)
		}
	})

	return strings.Join(paragraphs, "\n\n"), nil
}
