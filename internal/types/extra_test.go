package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtraMarshalSortedKeys(t *testing.T) {
	var e Extra
	e.Set("rank", Int(85))
	e.Set("is_hrc_partner", Bool(true))
	e.Set("hrc_partner_brand", Strings("Zed", "Alpha"))
	e.Set("hrc_orgid", String("1234"))

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"hrc_orgid":"1234","hrc_partner_brand":["Zed","Alpha"],"is_hrc_partner":true,"rank":85}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestExtraUnmarshalKinds(t *testing.T) {
	var e Extra
	if err := json.Unmarshal([]byte(`{"a":"x","b":3,"c":false,"d":["p","q"]}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if e["a"].Kind() != KindString || e["a"].Str() != "x" {
		t.Errorf("a = %#v", e["a"])
	}
	if e["b"].Kind() != KindInt || e["b"].IntValue() != 3 {
		t.Errorf("b = %#v", e["b"])
	}
	if e["c"].Kind() != KindBool || e["c"].BoolValue() {
		t.Errorf("c = %#v", e["c"])
	}
	if !e["d"].Equal(Strings("p", "q")) {
		t.Errorf("d = %#v", e["d"])
	}

	if err := json.Unmarshal([]byte(`{"x":1.5}`), &e); err == nil {
		t.Error("expected error for non-integer number")
	}
	if err := json.Unmarshal([]byte(`{"x":{"nested":1}}`), &e); err == nil {
		t.Error("expected error for object value")
	}
}

func TestValueAppendKeepsDuplicates(t *testing.T) {
	v := Strings("b", "a")
	v = v.Append("a", "c")

	if got := v.List(); len(got) != 4 {
		t.Fatalf("expected 4 elements, got %v", got)
	}
	if !v.Sorted().Equal(Strings("a", "a", "b", "c")) {
		t.Errorf("sorted = %v", v.Sorted().List())
	}
	// Sorted must not reorder the receiver.
	if v.List()[0] != "b" {
		t.Errorf("receiver modified: %v", v.List())
	}
}

func TestValueEqualAcrossKinds(t *testing.T) {
	if String("1").Equal(Int(1)) {
		t.Error("string and int must differ")
	}
	if !Bool(true).Equal(Bool(true)) {
		t.Error("equal bools must compare equal")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{Mismatch("3 td", 2, "<tr></tr>"), ErrStructuralMismatch},
		{&UnknownValueError{Table: "rating color", Value: "purple"}, ErrUnknownValue},
		{&MergeConflictError{Entity: "Acme", Field: "judgment.tier"}, ErrMergeConflict},
		{&EmptyResultError{Guide: "eggs", Got: 3, Min: 20}, ErrEmptyResultSet},
	}

	for _, tc := range cases {
		wrapped := &ParseError{Source: "page.html", Err: tc.err}
		if !errors.Is(wrapped, tc.sentinel) {
			t.Errorf("%v: expected errors.Is(%v)", tc.err, tc.sentinel)
		}
	}

	var me *MismatchError
	if !errors.As(&ParseError{Source: "x", Err: Mismatch("one h1", 0, "")}, &me) {
		t.Fatal("expected MismatchError via errors.As")
	}
	if me.Got != "0" {
		t.Errorf("got field = %q", me.Got)
	}
}
