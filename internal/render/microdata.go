package render

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/IshaanNene/pbg/internal/types"
)

const defaultGuideType = "CreativeWork/BuyingGuide"

// Sequence allocates item ids. One Sequence is passed down every render call
// of a document.
type Sequence struct {
	next int
}

// NewSequence returns a Sequence starting at #item-1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns a fresh item id.
func (s *Sequence) Next() string {
	id := fmt.Sprintf("#item-%d", s.next)
	s.next++
	return id
}

// MicrodataRenderer writes the guide as an HTML fragment annotated with
// itemscope, itemtype, itemid, and itemprop attributes.
type MicrodataRenderer struct{}

func (r *MicrodataRenderer) Format() string { return "microdata" }

func (r *MicrodataRenderer) Render(w io.Writer, guide *types.Guide) error {
	root := GuideItem(guide, NewSequence())
	if err := html.Render(w, root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// GuideItem builds the node tree of a guide, drawing ids from seq.
func GuideItem(guide *types.Guide, seq *Sequence) *html.Node {
	itemType := guide.Type
	if itemType == "" {
		itemType = defaultGuideType
	}

	n := item("", itemType, seq)
	textProp(n, "name", guide.Name)
	if guide.Author != nil {
		author := item("author", "Organization", seq)
		textProp(author, "name", guide.Author.Name)
		if guide.Author.Type != "" {
			textProp(author, "additionalType", guide.Author.Type)
		}
		n.AppendChild(author)
	}
	if guide.Description != "" {
		textProp(n, "description", guide.Description)
	}
	if guide.CopyrightYear != 0 {
		dataProp(n, "copyrightYear", strconv.Itoa(guide.CopyrightYear))
	}
	if guide.CopyrightHolder != "" {
		textProp(n, "copyrightHolder", guide.CopyrightHolder)
	}

	for _, e := range guide.Entries {
		n.AppendChild(judgmentItem(e, seq))
	}
	return n
}

func judgmentItem(e *types.Entry, seq *Sequence) *html.Node {
	n := item("recommendation", e.Judgment.TypeURI(), seq)
	textProp(n, "name", e.Judgment.Name)
	if e.Judgment.Caveat != "" {
		textProp(n, "caveat", e.Judgment.Caveat)
	}
	extraProps(n, e.Judgment.Extra)
	n.AppendChild(entityItem("target", e.Target, seq))
	return n
}

func entityItem(prop string, e *types.Entity, seq *Sequence) *html.Node {
	n := item(prop, e.Type, seq)
	textProp(n, "name", e.Name)

	if e.Owner != nil {
		n.AppendChild(entityItem("owner", e.Owner, seq))
	}
	if e.Address != nil {
		n.AppendChild(addressItem(e.Address, seq))
	}
	for _, b := range e.Brands {
		bn := item("brand", b.Type, seq)
		textProp(bn, "name", b.Name)
		for _, c := range b.Categories {
			bn.AppendChild(categoryItem(c, seq))
		}
		extraProps(bn, b.Extra)
		n.AppendChild(bn)
	}
	for _, c := range e.Categories {
		n.AppendChild(categoryItem(c, seq))
	}
	for _, m := range e.Markets {
		mn := item("market", "Place", seq)
		textProp(mn, "description", m.Desc)
		if m.Country != "" {
			textProp(mn, "addressCountry", m.Country)
		}
		n.AppendChild(mn)
	}
	extraProps(n, e.Extra)
	return n
}

func addressItem(a *types.Address, seq *Sequence) *html.Node {
	n := item("address", "PostalAddress", seq)
	for _, p := range []struct{ name, value string }{
		{"streetAddress", a.StreetAddress},
		{"addressLocality", a.Locality},
		{"addressRegion", a.Region},
		{"postalCode", a.PostalCode},
		{"addressCountry", a.Country},
		{"telephone", a.Telephone},
	} {
		if p.value != "" {
			textProp(n, p.name, p.value)
		}
	}
	return n
}

func categoryItem(c types.Category, seq *Sequence) *html.Node {
	n := item("category", "Category", seq)
	textProp(n, "name", c.Name)
	if c.SourceID != "" {
		dataProp(n, "sourceId", c.SourceID)
	}
	return n
}

// extraProps writes one data element per scalar, and one per element of a
// list, all named extra-<key>. Keys are sorted.
func extraProps(n *html.Node, extra types.Extra) {
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		v := extra[key]
		prop := "extra-" + key
		switch v.Kind() {
		case types.KindString:
			dataProp(n, prop, v.Str())
		case types.KindInt:
			dataProp(n, prop, strconv.Itoa(v.IntValue()))
		case types.KindBool:
			dataProp(n, prop, strconv.FormatBool(v.BoolValue()))
		case types.KindStrings:
			for _, s := range v.List() {
				dataProp(n, prop, s)
			}
		}
	}
}

func item(prop, itemType string, seq *Sequence) *html.Node {
	attrs := []html.Attribute{
		{Key: "itemscope"},
		{Key: "itemtype", Val: itemType},
		{Key: "itemid", Val: seq.Next()},
	}
	if prop != "" {
		attrs = append([]html.Attribute{{Key: "itemprop", Val: prop}}, attrs...)
	}
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div", Attr: attrs}
}

func textProp(parent *html.Node, prop, text string) {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "itemprop", Val: prop}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	parent.AppendChild(span)
}

func dataProp(parent *html.Node, prop, value string) {
	d := &html.Node{
		Type: html.ElementNode,
		Data: "data",
		Attr: []html.Attribute{
			{Key: "itemprop", Val: prop},
			{Key: "value", Val: value},
		},
	}
	d.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	parent.AppendChild(d)
}
