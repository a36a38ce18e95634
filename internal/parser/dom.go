package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`[\t\n\v\f\r ]+`)

// FixWhitespace collapses runs of ASCII whitespace to one space and trims the ends.
// Non-breaking spaces are content, not whitespace.
func FixWhitespace(s string) string {
	return strings.Trim(whitespaceRe.ReplaceAllString(s, " "), " ")
}

// OwnString returns the single string a node holds: the node's text if it is
// a text node, or the own string of its only child. Nodes with zero or several
// children hold no single string.
func OwnString(n *html.Node) (string, bool) {
	for n != nil {
		switch n.Type {
		case html.TextNode:
			return n.Data, true
		case html.ElementNode, html.DocumentNode:
			if n.FirstChild == nil || n.FirstChild != n.LastChild {
				return "", false
			}
			n = n.FirstChild
		default:
			return "", false
		}
	}
	return "", false
}

// SelectionString is OwnString for the first node of a selection.
func SelectionString(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	return OwnString(sel.Nodes[0])
}

// StrippedStrings returns every descendant text, trimmed, skipping blank ones.
func StrippedStrings(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if s := strings.TrimSpace(c.Data); s != "" {
					out = append(out, s)
				}
			case html.ElementNode:
				walk(c)
			}
		}
	}
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			return []string{s}
		}
		return nil
	}
	walk(n)
	return out
}

// Attr returns the value of a node attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Snippet renders a node for error messages.
func Snippet(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return FixWhitespace(buf.String())
}

// SelectionSnippet is Snippet for the first node of a selection.
func SelectionSnippet(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return Snippet(sel.Nodes[0])
}
