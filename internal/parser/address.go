package parser

import (
	"regexp"

	"github.com/IshaanNene/pbg/internal/types"
)

// addressRe matches "locality, region[ postal]". The region may be a code or a
// full name; postal codes are US ZIP or Canadian.
var addressRe = regexp.MustCompile(
	`^(?P<locality>.+), (?P<region>[A-Za-z][A-Za-z. ]*?)(?: (?P<postal>\d{5}(?:-\d{4})?|[A-Z]\d[A-Z] ?\d[A-Z]\d))?$`)

// ParseAddress parses a "locality, region[ postal]" line. The region is
// normalized to its two-letter code and the country derived from it.
func ParseAddress(line string) (*types.Address, error) {
	line = FixWhitespace(line)

	m := addressRe.FindStringSubmatch(line)
	if m == nil {
		return nil, types.Mismatch("address of the form \"locality, region[ postal]\"", nil, line)
	}

	groups := make(map[string]string, 3)
	for i, name := range addressRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	region, err := NormalizeRegion(groups["region"])
	if err != nil {
		return nil, err
	}

	return &types.Address{
		Locality:   groups["locality"],
		Region:     region,
		PostalCode: groups["postal"],
		Country:    CountryForRegion(region),
	}, nil
}
