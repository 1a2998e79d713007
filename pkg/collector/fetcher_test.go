package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeFetcher serves pages from memory. failures makes the first n fetches
// of a URL fail.
type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[string]string
	failures map[string]int
	calls    map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:    make(map[string]string),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[url]++
	if f.calls[url] <= f.failures[url] {
		return "", fmt.Errorf("connection reset fetching %s", url)
	}
	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("404 %s", url)
	}
	return page, nil
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func rankingsPage(players ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="mega-table"><tbody>`)
	for i, name := range players {
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		fmt.Fprintf(&b, `<tr><td>%d</td><td></td><td><img alt="ESP"></td><td><a href="/en/players/%s/p%d/overview">%s</a></td><td>30</td><td>9,000</td><td>15</td><td>500</td><td>200</td></tr>`,
			i+1, slug, i+1, name)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func profilePage(turnedPro int) string {
	return fmt.Sprintf(`<div class="inner-wrap"></div><div class="inner-wrap">
<div class="table-big-value">30</div><div class="table-big-value">%d</div>
<span class="table-weight-kg-wrapper">(85kg)</span><span class="table-height-cm-wrapper">(188cm)</span>
<div class="table-value">Manacor, Spain</div><div class="table-value">Manacor, Spain</div>
<div class="table-value">Left-Handed, Two-Handed Backhand</div><div class="table-value">Carlos Moya</div>
</div>`, turnedPro)
}

func statsPage(aces int, firstServe int) string {
	return fmt.Sprintf(`<table class="mega-table"><tr><td>Aces</td><td>%s</td></tr><tr><td>1st Serve</td><td>%d%%</td></tr></table>
<table class="mega-table"><tr><td>Return Games Played</td><td>%d</td></tr></table>`,
		withCommas(aces), firstServe, aces/10)
}

func withCommas(n int) string {
	s := fmt.Sprint(n)
	var out []string
	for len(s) > 3 {
		out = append([]string{s[len(s)-3:]}, out...)
		s = s[:len(s)-3]
	}
	return strings.Join(append([]string{s}, out...), ",")
}

func playerURL(slug string, n int) string {
	return fmt.Sprintf("https://www.atptour.com/en/players/%s/p%d/overview", slug, n)
}

func statsURL(slug string, n int) string {
	return fmt.Sprintf("https://www.atptour.com/en/players/%s/p%d/player-stats", slug, n)
}

func yearURL(slug string, n, year int) string {
	return fmt.Sprintf("%s?year=%d&surfaceType=all", statsURL(slug, n), year)
}
