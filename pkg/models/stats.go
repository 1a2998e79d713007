package models

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// OverallColumn is the label of the career column in a StatsTable
const OverallColumn = "Overall"

// NumberKind tells whether a statistic was a count or a percentage
type NumberKind int

const (
	Integer NumberKind = iota
	Fraction
)

func (k NumberKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Fraction:
		return "fraction"
	default:
		return fmt.Sprintf("NumberKind(%d)", int(k))
	}
}

// Number is a coerced statistic value. Percentages are stored as their
// decimal fraction, so "42%" is 0.42.
type Number struct {
	Kind  NumberKind
	Value decimal.Decimal
}

// IntNumber builds an Integer value.
func IntNumber(v int64) Number {
	return Number{Kind: Integer, Value: decimal.NewFromInt(v)}
}

// PercentNumber builds a Fraction value from a whole percentage.
func PercentNumber(pct int64) Number {
	return Number{Kind: Fraction, Value: decimal.New(pct, -2)}
}

// Float64 returns the value as a float.
func (n Number) Float64() float64 {
	f, _ := n.Value.Float64()
	return f
}

// Equal compares kind and numeric value.
func (n Number) Equal(o Number) bool {
	return n.Kind == o.Kind && n.Value.Equal(o.Value)
}

func (n Number) String() string {
	if n.Kind == Integer {
		return n.Value.StringFixed(0)
	}
	return n.Value.String()
}

// StatsTable maps statistic name to column label to value. Stats and
// Columns keep the row and column order as scraped.
type StatsTable struct {
	Stats   []string
	Columns []string
	Values  map[string]map[string]Number
}

// NewStatsTable returns an empty table with the given row index.
func NewStatsTable(stats []string) *StatsTable {
	t := &StatsTable{
		Stats:  append([]string(nil), stats...),
		Values: make(map[string]map[string]Number, len(stats)),
	}
	for _, s := range stats {
		t.Values[s] = make(map[string]Number)
	}
	return t
}

// AddColumn sets one column. Values for statistics outside the row index
// are dropped. Adding an existing label replaces it.
func (t *StatsTable) AddColumn(label string, values map[string]Number) {
	if !t.HasColumn(label) {
		t.Columns = append(t.Columns, label)
	}
	for _, stat := range t.Stats {
		if v, ok := values[stat]; ok {
			t.Values[stat][label] = v
		} else {
			delete(t.Values[stat], label)
		}
	}
}

// HasColumn reports whether the label is present.
func (t *StatsTable) HasColumn(label string) bool {
	for _, c := range t.Columns {
		if c == label {
			return true
		}
	}
	return false
}

// Value returns one cell.
func (t *StatsTable) Value(stat, column string) (Number, bool) {
	row, ok := t.Values[stat]
	if !ok {
		return Number{}, false
	}
	v, ok := row[column]
	return v, ok
}

// Column returns all values of one column keyed by statistic name.
func (t *StatsTable) Column(label string) map[string]Number {
	out := make(map[string]Number)
	for stat, row := range t.Values {
		if v, ok := row[label]; ok {
			out[stat] = v
		}
	}
	return out
}

// Years returns the numeric year columns in ascending order.
func (t *StatsTable) Years() []int {
	var years []int
	for _, c := range t.Columns {
		if y, err := strconv.Atoi(c); err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// PlayerStats is the statistics pair scraped for one player
type PlayerStats struct {
	Service *StatsTable
	Return  *StatsTable
}
