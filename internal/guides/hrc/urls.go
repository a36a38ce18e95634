package hrc

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"golang.org/x/net/html"

	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

const byCategory = "by Category"

// CategoryURLs lists the category page paths offered by the "by Category"
// dropdown of the guide's main page, relative to the guide root.
// The dropdown must offer more than minOptions categories.
func CategoryURLs(page *types.Page, minOptions int) ([]string, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	urls, err := categoryURLs(doc.Selection, minOptions)
	if err != nil {
		return nil, &types.ParseError{Source: page.Source, Selector: "#content div.legislation-box form", Err: err}
	}
	return urls, nil
}

func categoryURLs(doc *goquery.Selection, minOptions int) ([]string, error) {
	selected := doc.Find("#content div.legislation-box form option[selected]")
	if selected.Length() == 0 {
		return nil, types.Mismatch("selected dropdown options", 0, "")
	}

	for i := range selected.Nodes {
		opt := selected.Eq(i)
		label, ok := parser.SelectionString(opt)
		if !ok {
			return nil, types.Mismatch("a plain-text option label", nil, parser.SelectionSnippet(opt))
		}
		if strings.TrimSpace(label) != byCategory {
			continue
		}

		form := opt.Closest("form")
		action, err := parser.RequireAttr(form, "action")
		if err != nil {
			return nil, err
		}
		sel, err := parser.Exactly(form, "select", 1)
		if err != nil {
			return nil, err
		}
		name, err := parser.RequireAttr(sel, "name")
		if err != nil {
			return nil, err
		}

		options := form.Find("option[value]")
		if options.Length() <= minOptions {
			return nil, types.Mismatch(fmt.Sprintf("more than %d category options", minOptions), options.Length(), "")
		}

		return lo.Map(options.Nodes, func(n *html.Node, _ int) string {
			value, _ := parser.Attr(n, "value")
			return action + "?" + url.Values{name: {value}}.Encode()
		}), nil
	}

	return nil, types.Mismatch(fmt.Sprintf("a %q dropdown", byCategory), nil, "")
}
