package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	overviewSegment = "overview"
	statsSegment    = "player-stats"
)

// StatsURL derives the statistics page from a player overview URL by
// replacing its "overview" path segment.
func StatsURL(profileURL string) (string, error) {
	u, err := url.Parse(profileURL)
	if err != nil {
		return "", fmt.Errorf("invalid profile url %q: %w", profileURL, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	found := -1
	for i, s := range segments {
		if s != overviewSegment {
			continue
		}
		if found >= 0 {
			return "", fmt.Errorf("profile url %q has more than one %q segment", profileURL, overviewSegment)
		}
		found = i
	}
	if found < 0 {
		return "", fmt.Errorf("profile url %q has no %q segment", profileURL, overviewSegment)
	}

	segments[found] = statsSegment
	u.Path = "/" + strings.Join(segments, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// YearStatsURL adds the year filter to a statistics URL.
func YearStatsURL(statsURL string, year int) (string, error) {
	u, err := url.Parse(statsURL)
	if err != nil {
		return "", fmt.Errorf("invalid statistics url %q: %w", statsURL, err)
	}
	u.RawQuery = "year=" + strconv.Itoa(year) + "&surfaceType=all"
	return u.String(), nil
}
