package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/IshaanNene/pbg/internal/types"
)

const testHTML = `<!DOCTYPE html>
<html>
<body>
    <div id="content">
        <h1>About   the
            Guide</h1>
        <p>One   string</p>
        <p><strong>Nested only</strong></p>
        <p>Mixed <b>content</b></p>
        <p class="copyright lead">Copyright &copy; 2013 UNITE HERE</p>
        <table><tr><td>a</td><td>b</td></tr></table>
    </div>
</body>
</html>`

func mustDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testHTML))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestFixWhitespace(t *testing.T) {
	cases := map[string]string{
		"  a \n\t b  ":    "a b",
		"":                "",
		"\n\n":            "",
		"keep nbsp ": "keep nbsp",
	}
	for in, want := range cases {
		if got := FixWhitespace(in); got != want {
			t.Errorf("FixWhitespace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOwnString(t *testing.T) {
	doc := mustDoc(t)
	ps := doc.Find("#content > p")

	want := []struct {
		s  string
		ok bool
	}{
		{"One   string", true},
		{"Nested only", true},
		{"", false},
		{"Copyright © 2013 UNITE HERE", true},
	}

	ps.Each(func(i int, p *goquery.Selection) {
		s, ok := SelectionString(p)
		if s != want[i].s || ok != want[i].ok {
			t.Errorf("p[%d]: got (%q, %v), want (%q, %v)", i, s, ok, want[i].s, want[i].ok)
		}
	})
}

func TestStrippedStrings(t *testing.T) {
	n, err := html.Parse(strings.NewReader(`<p>
		Grand Hotel - ON STRIKE<br>
		1 Main St<br/>  <span> Springfield, IL 62701 </span>
	</p>`))
	if err != nil {
		t.Fatal(err)
	}
	got := StrippedStrings(n)
	want := []string{"Grand Hotel - ON STRIKE", "1 Main St", "Springfield, IL 62701"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stripped strings mismatch (-want +got):\n%s", diff)
	}
}

func TestAssertionHelpers(t *testing.T) {
	doc := mustDoc(t)
	content := doc.Find("#content")

	if _, err := Exactly(content, "td", 2); err != nil {
		t.Errorf("Exactly 2 td: %v", err)
	}
	if _, err := Exactly(content, "td", 3); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}
	if _, err := Between(content, "p", 1, 2); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch for 4 p, got %v", err)
	}

	h1, err := FirstString(content, "h1")
	if err != nil {
		t.Fatalf("FirstString: %v", err)
	}
	if err := ExpectText("about heading", FixWhitespace(h1), "about the guide"); err != nil {
		t.Errorf("ExpectText: %v", err)
	}
	if err := ExpectText("search heading", "Results", "search"); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}

	if _, err := First(content, "img"); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch for missing img, got %v", err)
	}
	if _, err := RequireAttr(content.Find("table"), "id"); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch for missing attr, got %v", err)
	}

	if n, err := Atoi("rank", " 85 "); err != nil || n != 85 {
		t.Errorf("Atoi = (%d, %v)", n, err)
	}
	if _, err := Atoi("rank", "eighty"); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}
}

func TestXPathHelpers(t *testing.T) {
	root, err := html.Parse(strings.NewReader(testHTML))
	if err != nil {
		t.Fatal(err)
	}

	p, err := QueryOne(root, ClassXPath("p", "copyright"))
	if err != nil {
		t.Fatalf("QueryOne: %v", err)
	}
	if got := InnerText(p); !strings.HasPrefix(got, "Copyright") {
		t.Errorf("copyright text = %q", got)
	}

	if _, err := QueryExactly(root, "//h2", 1); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}
	if _, err := QueryAll(root, "//p[@"); err == nil {
		t.Error("expected error for invalid xpath")
	}
}

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in   string
		want types.Address
	}{
		{"Some City, XX", types.Address{Locality: "Some City", Region: "XX", Country: "US"}},
		{"Some City, Utah", types.Address{Locality: "Some City", Region: "UT", Country: "US"}},
		{"Petaluma, CA 94952", types.Address{Locality: "Petaluma", Region: "CA", PostalCode: "94952", Country: "US"}},
		{"New York, New York 10001-1234", types.Address{Locality: "New York", Region: "NY", PostalCode: "10001-1234", Country: "US"}},
		{"Toronto, ON M5V 2T6", types.Address{Locality: "Toronto", Region: "ON", PostalCode: "M5V 2T6", Country: "CA"}},
		{"Montreal,  Quebec", types.Address{Locality: "Montreal", Region: "QC", Country: "CA"}},
	}

	for _, tc := range cases {
		got, err := ParseAddress(tc.in)
		if err != nil {
			t.Errorf("ParseAddress(%q): %v", tc.in, err)
			continue
		}
		if diff := cmp.Diff(tc.want, *got); diff != "" {
			t.Errorf("ParseAddress(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestParseAddressFailures(t *testing.T) {
	_, err := ParseAddress("Some City, Atlantis")
	var uv *types.UnknownValueError
	if !errors.As(err, &uv) || uv.Value != "Atlantis" {
		t.Errorf("expected unknown region Atlantis, got %v", err)
	}

	if _, err := ParseAddress("Some City"); !errors.Is(err, types.ErrStructuralMismatch) {
		t.Errorf("expected mismatch for missing region, got %v", err)
	}
}

func TestNormalizeRegion(t *testing.T) {
	for in, want := range map[string]string{
		"utah":                 "UT",
		"District of Columbia": "DC",
		"British Columbia":     "BC",
		"WA":                   "WA",
	} {
		got, err := NormalizeRegion(in)
		if err != nil || got != want {
			t.Errorf("NormalizeRegion(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}

	if _, err := NormalizeRegion("wa"); !errors.Is(err, types.ErrUnknownValue) {
		t.Errorf("lowercase code should be unknown, got %v", err)
	}
	if CountryForRegion("NS") != "CA" || CountryForRegion("NV") != "US" {
		t.Error("country lookup wrong")
	}
}
