package parser

import (
	"strings"

	"github.com/IshaanNene/pbg/internal/types"
)

var usRegions = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
	"puerto rico":          "PR",
}

var canadaRegions = map[string]string{
	"alberta":                   "AB",
	"british columbia":          "BC",
	"manitoba":                  "MB",
	"new brunswick":             "NB",
	"newfoundland and labrador": "NL",
	"nova scotia":               "NS",
	"ontario":                   "ON",
	"prince edward island":      "PE",
	"quebec":                    "QC",
	"saskatchewan":              "SK",
	"northwest territories":     "NT",
	"nunavut":                   "NU",
	"yukon":                     "YT",
}

var canadaCodes = func() map[string]bool {
	codes := make(map[string]bool, len(canadaRegions))
	for _, code := range canadaRegions {
		codes[code] = true
	}
	return codes
}()

// NormalizeRegion maps a state or province name to its two-letter code.
// Two-letter uppercase input is taken as already being a code.
func NormalizeRegion(name string) (string, error) {
	key := strings.ToLower(FixWhitespace(name))
	if code, ok := usRegions[key]; ok {
		return code, nil
	}
	if code, ok := canadaRegions[key]; ok {
		return code, nil
	}
	if isRegionCode(name) {
		return name, nil
	}
	return "", &types.UnknownValueError{Table: "region", Value: name}
}

// CountryForRegion returns CA for Canadian province codes and US otherwise.
func CountryForRegion(code string) string {
	if canadaCodes[code] {
		return "CA"
	}
	return "US"
}

func isRegionCode(s string) bool {
	return len(s) == 2 && s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
}
