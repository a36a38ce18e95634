package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/pbg/internal/types"
)

// Exactly returns the matches of selector under sel, failing unless there are n.
func Exactly(sel *goquery.Selection, selector string, n int) (*goquery.Selection, error) {
	found := sel.Find(selector)
	if found.Length() != n {
		return nil, types.Mismatch(fmt.Sprintf("%d %q", n, selector), found.Length(), SelectionSnippet(sel))
	}
	return found, nil
}

// Between returns the matches of selector under sel, failing unless min <= count <= max.
func Between(sel *goquery.Selection, selector string, min, max int) (*goquery.Selection, error) {
	found := sel.Find(selector)
	if found.Length() < min || found.Length() > max {
		return nil, types.Mismatch(fmt.Sprintf("%d to %d %q", min, max, selector), found.Length(), SelectionSnippet(sel))
	}
	return found, nil
}

// First returns the first match of selector under sel, failing if there is none.
func First(sel *goquery.Selection, selector string) (*goquery.Selection, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, types.Mismatch(fmt.Sprintf("a %q element", selector), nil, SelectionSnippet(sel))
	}
	return found, nil
}

// FirstString returns the single string of the first match of selector.
func FirstString(sel *goquery.Selection, selector string) (string, error) {
	found, err := First(sel, selector)
	if err != nil {
		return "", err
	}
	s, ok := SelectionString(found)
	if !ok {
		return "", types.Mismatch(fmt.Sprintf("%q to hold a single string", selector), nil, SelectionSnippet(found))
	}
	return s, nil
}

// RequireAttr returns an attribute of the first node in sel, failing if it is missing.
func RequireAttr(sel *goquery.Selection, key string) (string, error) {
	v, ok := sel.Attr(key)
	if !ok {
		return "", types.Mismatch(fmt.Sprintf("attribute %q", key), nil, SelectionSnippet(sel))
	}
	return v, nil
}

// ExpectText fails unless got equals want, compared case-insensitively.
func ExpectText(what, got, want string) error {
	if !strings.EqualFold(strings.TrimSpace(got), want) {
		return types.Mismatch(fmt.Sprintf("%s %q", what, want), fmt.Sprintf("%q", got), "")
	}
	return nil
}

// Atoi parses an integer cell, reporting failures as structural mismatches.
func Atoi(what, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, types.Mismatch(fmt.Sprintf("integer %s", what), fmt.Sprintf("%q", s), "")
	}
	return n, nil
}
