package types

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is one fully-read input document.
type Page struct {
	// Source is the file path, or "-" for standard input.
	Source string

	// Body is the decoded HTML.
	Body []byte

	// ReadAt is when the body finished loading.
	ReadAt time.Time

	root *html.Node
	doc  *goquery.Document
}

// NewPage creates a Page from an already-read body.
func NewPage(source string, body []byte) *Page {
	return &Page{
		Source: source,
		Body:   body,
		ReadAt: time.Now(),
	}
}

// Root returns the parsed node tree, parsing lazily.
// x/net/html builds the same HTML5 tree html5lib does, including implied tbody.
func (p *Page) Root() (*html.Node, error) {
	if p.root != nil {
		return p.root, nil
	}
	root, err := html.Parse(bytes.NewReader(p.Body))
	if err != nil {
		return nil, &ParseError{Source: p.Source, Err: err}
	}
	p.root = root
	return root, nil
}

// Document returns a goquery document over the parsed tree.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	root, err := p.Root()
	if err != nil {
		return nil, err
	}
	p.doc = goquery.NewDocumentFromNode(root)
	return p.doc, nil
}
