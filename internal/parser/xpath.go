package parser

import (
	"fmt"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/pbg/internal/types"
)

// QueryAll evaluates an XPath expression. Invalid expressions are programming errors
// and are reported as such rather than as mismatches.
func QueryAll(top *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// QueryExactly evaluates expr and fails unless it matches n nodes.
func QueryExactly(top *html.Node, expr string, n int) ([]*html.Node, error) {
	nodes, err := QueryAll(top, expr)
	if err != nil {
		return nil, err
	}
	if len(nodes) != n {
		return nil, types.Mismatch(fmt.Sprintf("%d nodes for %s", n, expr), len(nodes), "")
	}
	return nodes, nil
}

// QueryOne evaluates expr and returns its only match.
func QueryOne(top *html.Node, expr string) (*html.Node, error) {
	nodes, err := QueryExactly(top, expr, 1)
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// InnerText returns the concatenated text under n.
func InnerText(n *html.Node) string {
	return htmlquery.InnerText(n)
}

// ClassXPath matches elements of a tag whose class list contains class.
func ClassXPath(tag, class string) string {
	return fmt.Sprintf("//%s[contains(concat(' ', normalize-space(@class), ' '), ' %s ')]", tag, class)
}
