package hrc

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

// parseCategory extracts one partial entry per company row of a category page.
func parseCategory(content *goquery.Selection) ([]*types.Entry, error) {
	divs := content.Find("div")
	search, listing := divs.Eq(0), divs.Eq(1)

	heading, err := parser.FirstString(search, "h2")
	if err != nil {
		return nil, err
	}
	if err := parser.ExpectText("search heading", heading, "search"); err != nil {
		return nil, err
	}

	categoryName, err := parser.FirstString(listing, "h2")
	if err != nil {
		return nil, err
	}

	trs := listing.Find("table tbody tr")
	if trs.Length() == 0 {
		return nil, types.Mismatch("a table of companies", nil, parser.SelectionSnippet(listing))
	}

	header, err := parser.FirstString(trs.First(), "td p strong")
	if err != nil {
		return nil, err
	}
	if header != "Business" {
		return nil, types.Mismatch(`header cell "Business"`, fmt.Sprintf("%q", header), parser.SelectionSnippet(trs.First()))
	}

	var entries []*types.Entry
	var rowErr error
	trs.Slice(1, goquery.ToEnd).EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		entry, err := parseRow(tr, categoryName)
		if err != nil {
			rowErr = err
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return entries, nil
}

// parseRow reads the business, rating, and rank cells of one company row.
func parseRow(tr *goquery.Selection, categoryName string) (*types.Entry, error) {
	tds, err := parser.Exactly(tr, "td", 3)
	if err != nil {
		return nil, err
	}

	ps, err := parser.Between(tds.Eq(0), "p", 1, 2)
	if err != nil {
		return nil, err
	}
	companyP := ps.Eq(0)

	link, err := parser.First(companyP, "a")
	if err != nil {
		return nil, err
	}
	href, err := parser.RequireAttr(link, "href")
	if err != nil {
		return nil, err
	}
	catID, orgID, err := linkIDs(href)
	if err != nil {
		return nil, err
	}

	companyName, err := parser.FirstString(link, "strong")
	if err != nil {
		return nil, err
	}

	responded := companyP.Find("i").Length() == 0

	isPartner := false
	if img := companyP.Find("img").First(); img.Length() > 0 {
		if err := checkPartnerImg(img.Nodes[0]); err != nil {
			return nil, err
		}
		isPartner = true
	}

	var brandNames, partnerBrands []string
	if ps.Length() == 2 {
		// Some companies list no brands at all.
		brandNames, partnerBrands, err = parseBrands(ps.Eq(1).Nodes[0])
		if err != nil {
			return nil, err
		}
	}

	ratingImg, err := parser.First(tds.Eq(1), "img")
	if err != nil {
		return nil, err
	}
	src, err := parser.RequireAttr(ratingImg, "src")
	if err != nil {
		return nil, err
	}
	tier, err := RatingTier(src)
	if err != nil {
		return nil, err
	}

	rankP, err := parser.First(tds.Eq(2), "p")
	if err != nil {
		return nil, err
	}
	rankStrings := parser.StrippedStrings(rankP.Nodes[0])
	if len(rankStrings) != 1 {
		return nil, types.Mismatch("one string in the rank cell", len(rankStrings), parser.SelectionSnippet(rankP))
	}
	rank, err := parser.Atoi("rank", rankStrings[0])
	if err != nil {
		return nil, err
	}

	category := types.Category{Name: categoryName, SourceID: catID}

	brands := make([]*types.Brand, 0, len(brandNames))
	for _, name := range brandNames {
		var extra types.Extra
		extra.Set("is_hrc_partner", types.Bool(isPartner || slices.Contains(partnerBrands, name)))
		brands = append(brands, &types.Brand{
			Type:       "Brand",
			Name:       name,
			Categories: []types.Category{category},
			Extra:      extra,
		})
	}

	var targetExtra types.Extra
	targetExtra.Set("hrc_orgid", types.String(orgID))

	var judgmentExtra types.Extra
	judgmentExtra.Set("rank", types.Int(rank))
	judgmentExtra.Set("is_hrc_partner", types.Bool(isPartner))
	judgmentExtra.Set("hrc_partner_brand", types.Strings(partnerBrands...))
	judgmentExtra.Set("responded_to_survey", types.Bool(responded))

	judgment := &types.Judgment{
		Tier:  tier,
		Name:  fmt.Sprintf("%d out of 100", rank),
		Extra: judgmentExtra,
	}
	if !responded {
		judgment.Caveat = caveatNoSurvey
	}

	return &types.Entry{
		Target: &types.Entity{
			Type:       "Corporation",
			Name:       companyName,
			Brands:     brands,
			Categories: []types.Category{category},
			Extra:      targetExtra,
		},
		Judgment: judgment,
	}, nil
}

// linkIDs reads the catid and orgid query parameters of a company link.
func linkIDs(href string) (catID, orgID string, err error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", "", types.Mismatch("a company link", fmt.Sprintf("%q", href), "")
	}
	q := u.Query()
	for _, key := range []string{"catid", "orgid"} {
		if !q.Has(key) {
			return "", "", types.Mismatch(fmt.Sprintf("%q in the company link query", key), fmt.Sprintf("%q", href), "")
		}
	}
	return q.Get("catid"), q.Get("orgid"), nil
}
