package types

import "fmt"

// Tier is the closed judgment classification of a rating.
type Tier string

const (
	TierGood  Tier = "Good"
	TierMixed Tier = "Mixed"
	TierBad   Tier = "Bad"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierGood, TierMixed, TierBad:
		return true
	}
	return false
}

// Organization is a guide author.
type Organization struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name"`
}

// Guide is the root document emitted by a conversion run.
type Guide struct {
	Type            string        `json:"type,omitempty"`
	Name            string        `json:"name"`
	Author          *Organization `json:"author,omitempty"`
	Description     string        `json:"description,omitempty"`
	CopyrightYear   int           `json:"copyrightYear,omitempty"`
	CopyrightHolder string        `json:"copyrightHolder,omitempty"`
	Entries         []*Entry      `json:"entries"`
}

// Entry pairs a rated entity with its judgment.
type Entry struct {
	Target   *Entity   `json:"target"`
	Judgment *Judgment `json:"judgment"`
}

// Name returns the merge key of the entry: the target's display name.
func (e *Entry) Name() string {
	if e == nil || e.Target == nil {
		return ""
	}
	return e.Target.Name
}

// Entity is the company, brand, or hotel being rated.
type Entity struct {
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Owner      *Entity    `json:"owner,omitempty"`
	Address    *Address   `json:"address,omitempty"`
	Brands     []*Brand   `json:"brand,omitempty"`
	Categories []Category `json:"category,omitempty"`
	Markets    []Market   `json:"market,omitempty"`
	Extra      Extra      `json:"extra,omitempty"`
}

// Brand is a product line sold by a rated company.
type Brand struct {
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Categories []Category `json:"category,omitempty"`
	Extra      Extra      `json:"extra,omitempty"`
}

// Category is a descriptive tag with its identifier in the source system.
type Category struct {
	Name     string `json:"name"`
	SourceID string `json:"sourceId,omitempty"`
}

// Market is an area where an entity sells.
type Market struct {
	Desc    string `json:"desc"`
	Country string `json:"country,omitempty"`
}

// Address is a structured location.
type Address struct {
	StreetAddress string `json:"streetAddress,omitempty"`
	Locality      string `json:"locality"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"addressCountry,omitempty"`
	Telephone     string `json:"telephone,omitempty"`
}

// Judgment is the evaluation attached to an entity.
type Judgment struct {
	Tier   Tier   `json:"tier"`
	Name   string `json:"name"`
	Caveat string `json:"caveat,omitempty"`
	Extra  Extra  `json:"extra,omitempty"`
}

// TypeURI returns the enumeration path used by the microdata renderer.
func (j *Judgment) TypeURI() string {
	return fmt.Sprintf("Enumeration/Judgment/%s", j.Tier)
}
