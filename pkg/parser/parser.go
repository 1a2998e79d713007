// Package parser turns ATP rankings, overview and statistics pages into models
package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

// RankingsRowWidth is the number of cells that make up one rankings row:
// rank, move, country, name, age, points, tournaments, dropping, next best
const RankingsRowWidth = 9

const (
	cellRank = iota
	cellMove
	cellCountry
	cellName
	cellAge
	cellPoints
	cellTournaments
	cellDropping
	cellNextBest
)

// ParseRankings extracts every row of the rankings table. Player links are
// resolved against siteURL. Any malformed row fails the whole page.
func ParseRankings(htmlContent string, siteURL string) ([]models.RankingEntry, error) {
	// Parse the HTML content
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing rankings page: %w", err)
	}

	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site url %q: %w", siteURL, err)
	}

	// The page holds a single rankings table
	table := doc.Find("table.mega-table")
	switch table.Length() {
	case 0:
		return nil, missing("table.mega-table")
	case 1:
	default:
		return nil, &FieldError{Field: "table.mega-table", Detail: fmt.Sprintf("expected 1 table, found %d", table.Length())}
	}

	// Cells are read flat and regrouped into rows of RankingsRowWidth
	cells := table.Find("td")
	if cells.Length() == 0 {
		return nil, &FieldError{Field: "table.mega-table td", Detail: "table has no cells"}
	}
	if cells.Length()%RankingsRowWidth != 0 {
		return nil, fmt.Errorf("%w: %d cells is not a multiple of %d", ErrRowWidth, cells.Length(), RankingsRowWidth)
	}

	entries := make([]models.RankingEntry, 0, cells.Length()/RankingsRowWidth)
	for start := 0; start < cells.Length(); start += RankingsRowWidth {
		row := cells.Slice(start, start+RankingsRowWidth)
		entry, err := parseRankingRow(row, base)
		if err != nil {
			return nil, fmt.Errorf("rankings row %d: %w", start/RankingsRowWidth+1, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseRankingRow(row *goquery.Selection, base *url.URL) (models.RankingEntry, error) {
	var entry models.RankingEntry

	if row.Length() != RankingsRowWidth {
		return entry, fmt.Errorf("%w: got %d cells", ErrRowWidth, row.Length())
	}

	cell := func(i int) *goquery.Selection { return row.Eq(i) }

	// Country code is only present as the flag's alt text
	country, ok := cell(cellCountry).Find("img").Attr("alt")
	if !ok {
		return entry, missing("country img[alt]")
	}
	href, ok := cell(cellName).Find("a[href]").First().Attr("href")
	if !ok {
		return entry, missing("name a[href]")
	}
	link, err := url.Parse(cleanField(href))
	if err != nil {
		return entry, malformed("name a[href]", err)
	}

	entry.Country = cleanField(country)
	entry.Name = cleanField(cell(cellName).Text())
	entry.Website = base.ResolveReference(link).String()

	// Numeric columns
	ints := []struct {
		field string
		idx   int
		dst   *int
	}{
		{"rank", cellRank, &entry.Rank},
		{"move", cellMove, &entry.Move},
		{"age", cellAge, &entry.Age},
		{"points", cellPoints, &entry.Points},
		{"tournaments played", cellTournaments, &entry.TournamentsPlayed},
		{"points dropping", cellDropping, &entry.PointsDropping},
		{"next best", cellNextBest, &entry.NextBest},
	}
	for _, f := range ints {
		text := cleanField(cell(f.idx).Text())
		// players new to the rankings have no move
		if f.idx == cellMove && text == "" {
			*f.dst = 0
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return entry, malformed(f.field, err)
		}
		*f.dst = v
	}

	return entry, nil
}

// cleanField drops control characters and thousands separators and trims
// the surrounding whitespace.
func cleanField(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsControl(c) || c == ',' {
			continue
		}
		b.WriteRune(c)
	}
	return strings.TrimSpace(b.String())
}

// cleanText collapses a multi-line cell into one trimmed line.
func cleanText(s string) string {
	s = strings.NewReplacer("\r", "", "\n", "", "\t", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
