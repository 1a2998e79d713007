// Package collector runs the rankings, profile and statistics stages over a
// page fetcher.
package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
	"github.com/myusername/tennis-statistic-scraper/pkg/parser"
	"github.com/myusername/tennis-statistic-scraper/pkg/scraper"
)

var tracer = otel.Tracer("tennis-scraper/collector")

const (
	DefaultRankingsURL = "https://www.atptour.com/en/rankings/singles"
	DefaultSiteURL     = "https://www.atptour.com"
)

// Options configures a Collector. Zero values fall back to defaults.
type Options struct {
	RankingsURL string
	SiteURL     string
	// Top keeps only the first N ranking rows when positive.
	Top    int
	Retry  RetryPolicy
	Logger *zap.SugaredLogger
	// Now is the clock used to bound the statistics years.
	Now func() time.Time
}

// Collector scrapes rankings, profiles and statistics through a PageFetcher
type Collector struct {
	fetcher     scraper.PageFetcher
	rankingsURL string
	siteURL     string
	top         int
	retry       RetryPolicy
	logger      *zap.SugaredLogger
	now         func() time.Time
}

// New creates a Collector.
func New(fetcher scraper.PageFetcher, opts Options) *Collector {
	if opts.RankingsURL == "" {
		opts.RankingsURL = DefaultRankingsURL
	}
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Collector{
		fetcher:     fetcher,
		rankingsURL: opts.RankingsURL,
		siteURL:     opts.SiteURL,
		top:         opts.Top,
		retry:       opts.Retry.withDefaults(),
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

// Rankings fetches the rankings page once and returns its rows in order.
func (c *Collector) Rankings(ctx context.Context) ([]models.RankingEntry, error) {
	ctx, span := tracer.Start(ctx, "Rankings")
	defer span.End()

	c.logger.Infow("Fetching rankings", "url", c.rankingsURL)
	html, err := c.fetcher.Fetch(ctx, c.rankingsURL)
	if err != nil {
		return nil, err
	}

	// Parse the rankings and apply the cutoff
	entries, err := parser.ParseRankings(html, c.siteURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing rankings from %s: %w", c.rankingsURL, err)
	}
	if c.top > 0 && len(entries) > c.top {
		entries = entries[:c.top]
	}

	span.SetAttributes(attribute.Int("players", len(entries)))
	c.logger.Infow("Parsed rankings", "players", len(entries))
	return entries, nil
}

// Profiles fetches one overview page per URL. The first failure aborts the
// whole run.
func (c *Collector) Profiles(ctx context.Context, urls []string) ([]models.PlayerProfile, error) {
	ctx, span := tracer.Start(ctx, "Profiles")
	defer span.End()

	profiles := make([]models.PlayerProfile, 0, len(urls))
	for i, url := range urls {
		c.logger.Infow("Fetching profile", "index", i+1, "total", len(urls), "url", url)

		html, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		profile, err := parser.ParseProfile(html)
		if err != nil {
			return nil, fmt.Errorf("error parsing profile %s: %w", url, err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// Players runs the rankings and profile stages and joins them.
func (c *Collector) Players(ctx context.Context) ([]models.Player, error) {
	rankings, err := c.Rankings(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := c.Profiles(ctx, models.ProfileURLs(rankings))
	if err != nil {
		return nil, err
	}
	return models.JoinProfiles(rankings, profiles), nil
}

// Stats scrapes the service and return tables of one player. The overall
// view must succeed; a year that fails is skipped.
func (c *Collector) Stats(ctx context.Context, profileURL string, turnedPro int) (models.PlayerStats, error) {
	ctx, span := tracer.Start(ctx, "Stats")
	defer span.End()
	span.SetAttributes(attribute.String("profile", profileURL))

	var stats models.PlayerStats

	// Overall view, which also fixes the row order
	statsURL, err := scraper.StatsURL(profileURL)
	if err != nil {
		return stats, err
	}

	html, err := c.fetcher.Fetch(ctx, statsURL)
	if err != nil {
		return stats, err
	}
	service, ret, err := parser.ParseStatsTables(html)
	if err != nil {
		return stats, fmt.Errorf("error parsing statistics %s: %w", statsURL, err)
	}

	// Create the tables with the overall column
	stats.Service = models.NewStatsTable(service.Stats)
	stats.Service.AddColumn(models.OverallColumn, service.Values)
	stats.Return = models.NewStatsTable(ret.Stats)
	stats.Return.AddColumn(models.OverallColumn, ret.Values)

	// One column per season the player has been a professional
	for _, year := range c.statsYears(turnedPro) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		yearURL, err := scraper.YearStatsURL(statsURL, year)
		if err != nil {
			return stats, err
		}
		html, err := c.fetcher.Fetch(ctx, yearURL)
		if err != nil {
			c.logger.Debugw("Skipping statistics year", "url", yearURL, "year", year, "error", err)
			continue
		}
		service, ret, err := parser.ParseStatsTables(html)
		if err != nil {
			c.logger.Debugw("Skipping statistics year", "url", yearURL, "year", year, "error", err)
			continue
		}

		// Add the year columns
		label := strconv.Itoa(year)
		stats.Service.AddColumn(label, service.Values)
		stats.Return.AddColumn(label, ret.Values)
	}

	span.SetAttributes(attribute.Int("columns", len(stats.Service.Columns)))
	return stats, nil
}

// statsYears lists turnedPro through the current year. An unknown or future
// turned pro year gives no years.
func (c *Collector) statsYears(turnedPro int) []int {
	current := c.now().Year()
	if turnedPro <= 0 || turnedPro > current {
		return nil
	}
	years := make([]int, 0, current-turnedPro+1)
	for y := turnedPro; y <= current; y++ {
		years = append(years, y)
	}
	return years
}
