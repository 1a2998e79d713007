package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myusername/tennis-statistic-scraper/pkg/models"
)

// Status is the terminal state of one player in a batch
type Status int

const (
	// Pending is a player the batch has not finished.
	Pending Status = iota
	Succeeded
	Skipped
	// Canceled is a player left unfinished because the batch was canceled.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	case Pending:
		return "pending"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records how a player's statistics scrape ended
type Outcome struct {
	Player   models.PlayerRef
	Status   Status
	Attempts int
	Err      error
}

// BatchResult holds the statistics of every player that succeeded, keyed
// by player name, and one Outcome per input player in input order.
type BatchResult struct {
	Service  map[string]*models.StatsTable
	Return   map[string]*models.StatsTable
	Outcomes []Outcome
}

// Skipped returns the outcomes of players given up on after every retry
// failed. Canceled players are not included.
func (r *BatchResult) Skipped() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == Skipped {
			out = append(out, o)
		}
	}
	return out
}

// Batch scrapes statistics for every player. Each player is retried with
// backoff until the policy gives up, then marked Skipped. At most workers
// players are in flight; workers <= 1 runs them one at a time in order.
func (c *Collector) Batch(ctx context.Context, players []models.PlayerRef, workers int) (*BatchResult, error) {
	ctx, span := tracer.Start(ctx, "Batch")
	defer span.End()

	if workers <= 0 {
		workers = 1
	}

	result := &BatchResult{
		Service:  make(map[string]*models.StatsTable, len(players)),
		Return:   make(map[string]*models.StatsTable, len(players)),
		Outcomes: make([]Outcome, len(players)),
	}
	for i, p := range players {
		result.Outcomes[i] = Outcome{Player: p, Status: Pending}
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range players {
		if gctx.Err() != nil {
			break
		}

		i, p := i, p
		g.Go(func() error {
			c.logger.Infow("Fetching statistics", "index", i+1, "total", len(players), "player", p.Name)

			var stats models.PlayerStats
			attempts, err := retry(gctx, c.retry,
				func(attempt int, delay time.Duration, err error) {
					c.logger.Warnw("Statistics fetch failed, retrying",
						"player", p.Name, "attempt", attempt, "max_attempts", c.retry.MaxAttempts,
						"delay", delay, "error", err)
				},
				func(ctx context.Context) error {
					var err error
					stats, err = c.Stats(ctx, p.ProfileURL, p.TurnedPro)
					return err
				})

			mu.Lock()
			defer mu.Unlock()

			if ctxErr := gctx.Err(); ctxErr != nil {
				result.Outcomes[i] = Outcome{Player: p, Status: Canceled, Attempts: attempts, Err: ctxErr}
				return ctxErr
			}

			outcome := Outcome{Player: p, Attempts: attempts, Err: err}
			if err != nil {
				outcome.Status = Skipped
				c.logger.Errorw("Giving up on player statistics", "player", p.Name, "attempts", attempts, "error", err)
			} else {
				outcome.Status = Succeeded
				if _, dup := result.Service[p.Name]; dup {
					c.logger.Warnw("Duplicate player name, keeping latest statistics", "player", p.Name)
				}
				result.Service[p.Name] = stats.Service
				result.Return[p.Name] = stats.Return
			}
			result.Outcomes[i] = outcome
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		// players that never started
		for i := range result.Outcomes {
			if result.Outcomes[i].Status == Pending {
				result.Outcomes[i].Status = Canceled
				result.Outcomes[i].Err = err
			}
		}
		return result, err
	}

	c.logger.Infow("Statistics batch complete",
		"players", len(players), "succeeded", len(players)-len(result.Skipped()), "skipped", len(result.Skipped()))
	return result, nil
}
