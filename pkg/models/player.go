// Package models contains data structures for ATP rankings and player statistics
package models

// RankingEntry holds one row of the singles rankings table
type RankingEntry struct {
	Rank              int
	Move              int
	Country           string
	Name              string
	Website           string
	Age               int
	Points            int
	TournamentsPlayed int
	PointsDropping    int
	NextBest          int
}

// PlayerProfile holds the biographical fields from a player overview page
type PlayerProfile struct {
	TurnedPro  int
	WeightKg   int
	HeightCm   int
	BirthPlace string
	Residence  string
	Handedness string
	Backhand   string
	Coach      string
}

// Player is a ranking row joined with its profile
type Player struct {
	Ranking RankingEntry
	Profile PlayerProfile
}

// PlayerRef is the minimum the statistics batch needs to know about a player
type PlayerRef struct {
	Name       string
	ProfileURL string
	TurnedPro  int
}

// Ref returns the statistics batch input for this player.
func (p Player) Ref() PlayerRef {
	return PlayerRef{
		Name:       p.Ranking.Name,
		ProfileURL: p.Ranking.Website,
		TurnedPro:  p.Profile.TurnedPro,
	}
}

// JoinProfiles pairs rankings with profiles by position. The shorter slice
// decides the length.
func JoinProfiles(rankings []RankingEntry, profiles []PlayerProfile) []Player {
	n := len(rankings)
	if len(profiles) < n {
		n = len(profiles)
	}

	players := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, Player{Ranking: rankings[i], Profile: profiles[i]})
	}
	return players
}

// Refs converts players into statistics batch input, keeping order.
func Refs(players []Player) []PlayerRef {
	refs := make([]PlayerRef, len(players))
	for i, p := range players {
		refs[i] = p.Ref()
	}
	return refs
}

// ProfileURLs returns the Website column of the rankings.
func ProfileURLs(rankings []RankingEntry) []string {
	urls := make([]string, len(rankings))
	for i, r := range rankings {
		urls[i] = r.Website
	}
	return urls
}
