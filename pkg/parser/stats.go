package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

// StatsColumn is one scraped view of a statistics table
type StatsColumn struct {
	Stats  []string
	Values map[string]models.Number
}

// ParseStatsTables reads the service and return record tables from a
// player statistics page. The page must hold exactly two tables.
func ParseStatsTables(htmlContent string) (service, ret StatsColumn, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return service, ret, fmt.Errorf("error parsing statistics page: %w", err)
	}

	// Service record first, return record second
	tables := doc.Find("table.mega-table")
	if tables.Length() != 2 {
		return service, ret, &FieldError{
			Field:  "table.mega-table",
			Detail: fmt.Sprintf("expected 2 statistics tables, found %d", tables.Length()),
		}
	}

	if service, err = parseStatsTable(tables.Eq(0)); err != nil {
		return service, ret, fmt.Errorf("service table: %w", err)
	}
	if ret, err = parseStatsTable(tables.Eq(1)); err != nil {
		return service, ret, fmt.Errorf("return table: %w", err)
	}
	return service, ret, nil
}

func parseStatsTable(table *goquery.Selection) (StatsColumn, error) {
	col := StatsColumn{Values: make(map[string]models.Number)}

	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		// header rows use th
		if cells.Length() == 0 {
			return true
		}
		if cells.Length() < 2 {
			rowErr = &FieldError{Field: fmt.Sprintf("statistics row %d", i), Detail: "expected name and value cells"}
			return false
		}

		name := cleanText(cells.Eq(0).Text())
		if name == "" {
			rowErr = &FieldError{Field: fmt.Sprintf("statistics row %d", i), Detail: "empty statistic name"}
			return false
		}
		v, err := ParseNumber(cleanText(cells.Eq(1).Text()))
		if err != nil {
			rowErr = malformed(name, err)
			return false
		}

		if _, dup := col.Values[name]; !dup {
			col.Stats = append(col.Stats, name)
		}
		col.Values[name] = v
		return true
	})
	if rowErr != nil {
		return col, rowErr
	}
	if len(col.Stats) == 0 {
		return col, &FieldError{Field: "statistics rows", Detail: "table has no statistics"}
	}
	return col, nil
}
