package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

const siteURL = "https://www.atptour.com"

type rankingRow struct {
	rank, move, country, name, href, age, points, tournaments, dropping, nextBest string
}

func rankingsPage(rows ...rankingRow) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="rankings"><table class="mega-table"><thead><tr><th>Ranking</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&b, `
<tr>
	<td class="rank-cell">
		%s
	</td>
	<td class="move-cell">%s</td>
	<td class="country-cell"><div class="country-inner"><img alt="%s" src="/flags/x.svg"></div></td>
	<td class="player-cell"><span><a href="%s" data-ga-label="%s">%s</a></span></td>
	<td class="age-cell">%s</td>
	<td class="points-cell"><a href="/breakdown">%s</a></td>
	<td class="tourn-cell"><a href="/activity">%s</a></td>
	<td class="pts-cell">%s</td>
	<td class="next-cell">%s</td>
</tr>`, r.rank, r.move, r.country, r.href, r.name, r.name, r.age, r.points, r.tournaments, r.dropping, r.nextBest)
	}
	b.WriteString(`</tbody></table></div></body></html>`)
	return b.String()
}

var testPlayer = rankingRow{
	rank: "1", move: "", country: "ESP", name: "Test Player", href: "/en/players/test/p1/overview",
	age: "30", points: "9,000", tournaments: "15", dropping: "500", nextBest: "200",
}

func TestParseRankings(t *testing.T) {
	entries, err := ParseRankings(rankingsPage(testPlayer), siteURL)
	require.NoError(t, err)

	expected := []models.RankingEntry{{
		Rank:              1,
		Move:              0,
		Country:           "ESP",
		Name:              "Test Player",
		Website:           "https://www.atptour.com/en/players/test/p1/overview",
		Age:               30,
		Points:            9000,
		TournamentsPlayed: 15,
		PointsDropping:    500,
		NextBest:          200,
	}}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf("rankings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRankingsKeepsOrderAndMoves(t *testing.T) {
	second := rankingRow{
		rank: "2", move: "-1", country: "SRB", name: "Other Player", href: "/en/players/other/o2/overview",
		age: "36", points: "8,\n115", tournaments: "12", dropping: "0", nextBest: "0",
	}
	third := rankingRow{
		rank: "3", move: "2", country: "ITA", name: "Third Player", href: "https://www.atptour.com/en/players/third/t3/overview",
		age: "22", points: "7,500", tournaments: "20", dropping: "1,000", nextBest: "615",
	}

	entries, err := ParseRankings(rankingsPage(testPlayer, second, third), siteURL)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, []string{"Test Player", "Other Player", "Third Player"},
		[]string{entries[0].Name, entries[1].Name, entries[2].Name})
	require.Equal(t, -1, entries[1].Move)
	require.Equal(t, 8115, entries[1].Points)
	require.Equal(t, 2, entries[2].Move)
	require.Equal(t, 1000, entries[2].PointsDropping)
	require.Equal(t, "https://www.atptour.com/en/players/third/t3/overview", entries[2].Website)
}

func TestParseRankingsRowWidth(t *testing.T) {
	page := rankingsPage(testPlayer)
	// one stray cell makes 10 cells
	page = strings.Replace(page, `<td class="next-cell">`, `<td>extra</td><td class="next-cell">`, 1)

	entries, err := ParseRankings(page, siteURL)
	require.Error(t, err)
	require.Nil(t, entries)
	require.True(t, errors.Is(err, ErrRowWidth))
}

func TestParseRankingsMissingTable(t *testing.T) {
	_, err := ParseRankings(`<html><body><p>maintenance</p></body></html>`, siteURL)
	require.Error(t, err)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "table.mega-table", fieldErr.Field)
}

func TestParseRankingsEmptyTable(t *testing.T) {
	_, err := ParseRankings(`<table class="mega-table"><tbody></tbody></table>`, siteURL)
	require.Error(t, err)
}

func TestParseRankingsRejectsBadNumbers(t *testing.T) {
	bad := testPlayer
	bad.age = "thirty"

	entries, err := ParseRankings(rankingsPage(testPlayer, bad), siteURL)
	require.Error(t, err)
	require.Nil(t, entries)
	require.Contains(t, err.Error(), "rankings row 2")

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "age", fieldErr.Field)
}

func TestParseRankingsMissingFlag(t *testing.T) {
	page := strings.Replace(rankingsPage(testPlayer), `<img alt="ESP" src="/flags/x.svg">`, "", 1)

	_, err := ParseRankings(page, siteURL)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "country img[alt]", fieldErr.Field)
}

func TestCleanField(t *testing.T) {
	require.Equal(t, "9000", cleanField("\r\n\t9,000\n"))
	require.Equal(t, "", cleanField("\n\t  \n"))
	require.Equal(t, "Test Player", cleanField("\n  Test Player\t"))
}
