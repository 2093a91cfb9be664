package service

import (
	"context"
	"errors"
	"sync"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// WarmReport summarizes a warm-up batch.
type WarmReport struct {
	Total       int `json:"total"`
	Cached      int `json:"cached"`
	Computed    int `json:"computed"`
	Unavailable int `json:"unavailable"`
	Failed      int `json:"failed"`
}

type warmOutcome int

const (
	outcomeCached warmOutcome = iota
	outcomeComputed
	outcomeUnavailable
	outcomeFailed
)

// WarmRoutes resolves routes for a batch of destinations with a bounded worker pool,
// so that later page views are served from the cache.
func (rs *RouteService) WarmRoutes(ctx context.Context, destinations []models.Destination) WarmReport {
	report := WarmReport{Total: len(destinations)}
	if len(destinations) == 0 {
		rs.log.InfoContext(ctx, "No destinations to warm.")
		return report
	}

	numWorkers := min(rs.numWorkers, len(destinations))
	rs.log.InfoContext(ctx, "Warming routes. Starting worker pool.",
		"jobs", len(destinations), "num_workers", numWorkers)

	jobs := make(chan models.Destination, len(destinations))
	results := make(chan warmOutcome, len(destinations))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go rs.worker(ctx, i, &wgr, jobs, results)
	}

	for _, dest := range destinations {
		jobs <- dest
	}
	close(jobs)

	wgr.Wait()
	close(results)

	for outcome := range results {
		switch outcome {
		case outcomeCached:
			report.Cached++
		case outcomeComputed:
			report.Computed++
		case outcomeUnavailable:
			report.Unavailable++
		case outcomeFailed:
			report.Failed++
		}
	}

	rs.log.InfoContext(ctx, "Warm-up batch finished",
		"cached", report.Cached, "computed", report.Computed,
		"unavailable", report.Unavailable, "failed", report.Failed)

	return report
}

// worker resolves destinations from the jobs channel until it is closed.
// After cancellation the remaining jobs are drained and counted as failed.
func (rs *RouteService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan models.Destination,
	results chan<- warmOutcome,
) {
	defer wg.Done()
	for dest := range jobs {
		if ctx.Err() != nil {
			results <- outcomeFailed
			continue
		}

		rs.metrics.ActiveWorkers.Inc()
		rs.log.DebugContext(ctx, "Warming route", "worker", idx, "destination", dest.ID)

		_, computed, err := rs.resolve(ctx, dest)
		switch {
		case err == nil && computed:
			results <- outcomeComputed
		case err == nil:
			results <- outcomeCached
		case errors.Is(err, ErrRouteUnavailable):
			results <- outcomeUnavailable
		default:
			rs.log.ErrorContext(ctx, "Failed to warm route", "worker", idx, "destination", dest.ID, "error", err)
			results <- outcomeFailed
		}

		rs.metrics.ActiveWorkers.Dec()
	}
}
