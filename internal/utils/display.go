// Package utils renders scraped tables to the console and to CSV files
package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/myusername/tennis-statistic-scraper/pkg/collector"
	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// DisplayRankings prints the rankings table
func DisplayRankings(w io.Writer, rankings []models.RankingEntry) {
	t := newTable(w)
	t.SetTitle("ATP SINGLES RANKINGS")
	t.AppendHeader(table.Row{"Rank", "Move", "Country", "Player", "Age", "Points", "Played", "Dropping", "Next Best"})
	for _, r := range rankings {
		t.AppendRow(table.Row{r.Rank, r.Move, r.Country, r.Name, r.Age, r.Points, r.TournamentsPlayed, r.PointsDropping, r.NextBest})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// DisplayPlayers prints rankings joined with profiles
func DisplayPlayers(w io.Writer, players []models.Player) {
	t := newTable(w)
	t.SetTitle("PLAYER PROFILES")
	t.AppendHeader(table.Row{"Rank", "Player", "Turned Pro", "Weight (kg)", "Height (cm)", "Birthplace", "Residence", "Plays", "Backhand", "Coach"})
	for _, p := range players {
		t.AppendRow(table.Row{
			p.Ranking.Rank, p.Ranking.Name, p.Profile.TurnedPro, p.Profile.WeightKg, p.Profile.HeightCm,
			p.Profile.BirthPlace, p.Profile.Residence, p.Profile.Handedness, p.Profile.Backhand, p.Profile.Coach,
		})
	}
	t.Render()
}

// DisplayStatsTable prints one player's statistics table, one column per year
func DisplayStatsTable(w io.Writer, title string, st *models.StatsTable) {
	t := newTable(w)
	t.SetTitle(title)

	header := table.Row{"Statistic"}
	for _, c := range st.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for _, stat := range st.Stats {
		row := table.Row{stat}
		for _, c := range st.Columns {
			if v, ok := st.Value(stat, c); ok {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}

// DisplayBatch prints every scraped player's tables followed by a summary of
// the players that were skipped
func DisplayBatch(w io.Writer, result *collector.BatchResult) {
	names := make([]string, 0, len(result.Service))
	for name := range result.Service {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		DisplayStatsTable(w, fmt.Sprintf("%s - SERVICE RECORD", name), result.Service[name])
		DisplayStatsTable(w, fmt.Sprintf("%s - RETURN RECORD", name), result.Return[name])
	}

	t := newTable(w)
	t.SetTitle("STATISTICS SUMMARY")
	t.AppendHeader(table.Row{"Player", "Status", "Attempts", "Error"})
	for _, o := range result.Outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		t.AppendRow(table.Row{o.Player.Name, o.Status.String(), o.Attempts, errText})
	}
	t.Render()
}
