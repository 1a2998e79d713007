package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

// ParseProfile extracts the biographical table from a player overview page.
// Every field is required.
func ParseProfile(htmlContent string) (models.PlayerProfile, error) {
	var profile models.PlayerProfile

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return profile, fmt.Errorf("error parsing overview page: %w", err)
	}

	// The biography sits in the second inner wrap
	wraps := doc.Find("div.inner-wrap")
	if wraps.Length() < 2 {
		return profile, missing("div.inner-wrap[1]")
	}
	main := wraps.Eq(1)

	// Age comes first, then the turned pro year
	bigValues := main.Find("div.table-big-value")
	if bigValues.Length() < 2 {
		return profile, missing("turned pro (div.table-big-value[1])")
	}
	profile.TurnedPro, err = strconv.Atoi(cleanText(bigValues.Eq(1).Text()))
	if err != nil {
		return profile, malformed("turned pro", err)
	}

	profile.WeightKg, err = unitValue(main, "span.table-weight-kg-wrapper", "()kg", "weight")
	if err != nil {
		return profile, err
	}
	profile.HeightCm, err = unitValue(main, "span.table-height-cm-wrapper", "()cm", "height")
	if err != nil {
		return profile, err
	}

	// Birthplace, residence, plays and coach in page order
	values := main.Find("div.table-value")
	text := func(i int, field string) (string, error) {
		if values.Length() <= i {
			return "", missing(fmt.Sprintf("%s (div.table-value[%d])", field, i))
		}
		return cleanText(values.Eq(i).Text()), nil
	}

	if profile.BirthPlace, err = text(0, "birthplace"); err != nil {
		return profile, err
	}
	if profile.Residence, err = text(1, "residence"); err != nil {
		return profile, err
	}
	plays, err := text(2, "plays")
	if err != nil {
		return profile, err
	}
	if profile.Handedness, profile.Backhand, err = SplitPlays(plays); err != nil {
		return profile, err
	}
	if profile.Coach, err = text(3, "coach"); err != nil {
		return profile, err
	}

	return profile, nil
}

// SplitPlays splits "Right-Handed, Two-Handed Backhand" into handedness and
// backhand. The field must contain exactly one comma.
func SplitPlays(s string) (string, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return "", "", &FieldError{Field: "plays", Detail: fmt.Sprintf("expected 2 comma separated parts, got %d in %q", len(parts), s)}
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// StripUnit turns "(85kg)" into 85 given the cutset "()kg".
func StripUnit(s, cutset string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, cutset)
	return strconv.Atoi(strings.TrimSpace(s))
}

func unitValue(sel *goquery.Selection, selector, cutset, field string) (int, error) {
	node := sel.Find(selector).First()
	if node.Length() == 0 {
		return 0, missing(fmt.Sprintf("%s (%s)", field, selector))
	}
	v, err := StripUnit(node.Text(), cutset)
	if err != nil {
		return 0, malformed(field, err)
	}
	return v, nil
}
