package hrc

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

// PageKind names the two page shapes the guide publishes.
type PageKind int

const (
	PageAbout PageKind = iota + 1
	PageCategory
)

func (k PageKind) String() string {
	switch k {
	case PageAbout:
		return "about"
	case PageCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Classified is a page tagged with its kind.
type Classified struct {
	Kind PageKind

	// Content is the first #content element.
	Content *goquery.Selection
}

// Classify tags a page by the number of div elements under #content:
// one for the about page, two for a category page.
func Classify(page *types.Page) (*Classified, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	content, err := parser.First(doc.Selection, "#content")
	if err != nil {
		return nil, err
	}

	switch n := content.Find("div").Length(); n {
	case 1:
		return &Classified{Kind: PageAbout, Content: content}, nil
	case 2:
		return &Classified{Kind: PageCategory, Content: content}, nil
	default:
		return nil, types.Mismatch("1 (about) or 2 (category) div elements under #content", n, "")
	}
}
