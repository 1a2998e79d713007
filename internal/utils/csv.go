package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

func writeCSV(filename string, header []string, rows [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return f.Close()
}

// SaveRankingsToCSV saves the rankings table to a CSV file
func SaveRankingsToCSV(rankings []models.RankingEntry, filename string) error {
	rows := make([][]string, 0, len(rankings))
	for _, r := range rankings {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank), strconv.Itoa(r.Move), r.Country, r.Name, r.Website,
			strconv.Itoa(r.Age), strconv.Itoa(r.Points), strconv.Itoa(r.TournamentsPlayed),
			strconv.Itoa(r.PointsDropping), strconv.Itoa(r.NextBest),
		})
	}
	return writeCSV(filename,
		[]string{"Ranking", "Move", "Country", "Name", "Website", "Age", "Points", "Tournaments Played", "Points Dropping", "Next Best"},
		rows)
}

// SavePlayersToCSV saves rankings joined with profiles to a CSV file
func SavePlayersToCSV(players []models.Player, filename string) error {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			strconv.Itoa(p.Ranking.Rank), p.Ranking.Name, p.Ranking.Website,
			strconv.Itoa(p.Profile.TurnedPro), strconv.Itoa(p.Profile.WeightKg), strconv.Itoa(p.Profile.HeightCm),
			p.Profile.BirthPlace, p.Profile.Residence, p.Profile.Handedness, p.Profile.Backhand, p.Profile.Coach,
		})
	}
	return writeCSV(filename,
		[]string{"Ranking", "Name", "Website", "Turned_pro", "Weight", "Height", "Birth_place", "Residence", "Handedness", "Backhand", "Coach"},
		rows)
}

// SaveStatsTableToCSV saves one statistics table, one column per year
func SaveStatsTableToCSV(st *models.StatsTable, filename string) error {
	rows := make([][]string, 0, len(st.Stats))
	for _, stat := range st.Stats {
		row := []string{stat}
		for _, c := range st.Columns {
			if v, ok := st.Value(stat, c); ok {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return writeCSV(filename, append([]string{"Statistic"}, st.Columns...), rows)
}

// StatsFileName builds "<player>_<kind>.csv" inside dir
func StatsFileName(dir, player, kind string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(player), "-"))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", slug, kind))
}
