package hrc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

// parseBrands walks the children of a brand paragraph. Each text node is one
// brand name. A partner image tags only the brand that follows it.
func parseBrands(p *html.Node) (names, partners []string, err error) {
	partnerNext := false

	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.Data == "img":
			if err := checkPartnerImg(c); err != nil {
				return nil, nil, err
			}
			partnerNext = true

		case c.Type == html.TextNode:
			name := parser.FixWhitespace(c.Data)
			if name == "" {
				continue
			}
			names = append(names, name)
			if partnerNext {
				partners = append(partners, name)
				partnerNext = false
			}
		}
	}
	return names, partners, nil
}

// checkPartnerImg fails unless img is the blue partner badge.
func checkPartnerImg(img *html.Node) error {
	src, ok := parser.Attr(img, "src")
	if !ok || !strings.Contains(src, "blue") {
		return types.Mismatch(`partner image with "blue" in its src`, src, parser.Snippet(img))
	}
	return nil
}
