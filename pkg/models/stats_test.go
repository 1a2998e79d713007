package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsTableAddColumn(t *testing.T) {
	table := NewStatsTable([]string{"Aces", "Double Faults"})
	table.AddColumn(OverallColumn, map[string]Number{
		"Aces":          IntNumber(1000),
		"Double Faults": IntNumber(200),
	})
	table.AddColumn("2021", map[string]Number{
		"Aces":        IntNumber(300),
		"Unknown Row": IntNumber(1),
	})

	require.Equal(t, []string{OverallColumn, "2021"}, table.Columns)
	require.Equal(t, []string{"Aces", "Double Faults"}, table.Stats)

	v, ok := table.Value("Aces", "2021")
	require.True(t, ok)
	require.True(t, v.Equal(IntNumber(300)))

	_, ok = table.Value("Double Faults", "2021")
	require.False(t, ok)
	_, ok = table.Value("Unknown Row", "2021")
	require.False(t, ok)

	require.Len(t, table.Column("2021"), 1)
	require.Len(t, table.Column(OverallColumn), 2)
}

func TestStatsTableReplaceColumn(t *testing.T) {
	table := NewStatsTable([]string{"Aces"})
	table.AddColumn("2020", map[string]Number{"Aces": IntNumber(1)})
	table.AddColumn("2020", map[string]Number{"Aces": IntNumber(2)})

	require.Equal(t, []string{"2020"}, table.Columns)
	v, _ := table.Value("Aces", "2020")
	require.True(t, v.Equal(IntNumber(2)))
}

func TestStatsTableYears(t *testing.T) {
	table := NewStatsTable([]string{"Aces"})
	for _, c := range []string{OverallColumn, "2019", "2017", "2018"} {
		table.AddColumn(c, nil)
	}
	require.Equal(t, []int{2017, 2018, 2019}, table.Years())
}

func TestNumberString(t *testing.T) {
	require.Equal(t, "1234", IntNumber(1234).String())
	require.Equal(t, "0.42", PercentNumber(42).String())
	require.False(t, IntNumber(1).Equal(PercentNumber(100)))
}

func TestJoinProfiles(t *testing.T) {
	rankings := []RankingEntry{
		{Rank: 1, Name: "A", Website: "https://x/a/overview"},
		{Rank: 2, Name: "B", Website: "https://x/b/overview"},
	}
	profiles := []PlayerProfile{{TurnedPro: 2010}}

	players := JoinProfiles(rankings, profiles)
	require.Len(t, players, 1)
	require.Equal(t, PlayerRef{Name: "A", ProfileURL: "https://x/a/overview", TurnedPro: 2010}, players[0].Ref())
	require.Equal(t, []string{"https://x/a/overview", "https://x/b/overview"}, ProfileURLs(rankings))
}
