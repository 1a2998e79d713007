package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

// ParseNumber coerces a statistic cell. "1,234" is the integer 1234,
// "42%" is the fraction 0.42 and "57" is the integer 57. Anything else
// fails with ErrUnrecognizedNumber.
func ParseNumber(raw string) (models.Number, error) {
	s := strings.TrimSpace(raw)

	switch {
	case strings.Contains(s, ","):
		v, err := parseInt(strings.ReplaceAll(s, ",", ""))
		if err != nil {
			return models.Number{}, fmt.Errorf("%w: %q", ErrUnrecognizedNumber, raw)
		}
		return models.IntNumber(v), nil
	case strings.Contains(s, "%"):
		v, err := parseInt(strings.ReplaceAll(s, "%", ""))
		if err != nil {
			return models.Number{}, fmt.Errorf("%w: %q", ErrUnrecognizedNumber, raw)
		}
		return models.PercentNumber(v), nil
	default:
		v, err := parseInt(s)
		if err != nil {
			return models.Number{}, fmt.Errorf("%w: %q", ErrUnrecognizedNumber, raw)
		}
		return models.IntNumber(v), nil
	}
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
