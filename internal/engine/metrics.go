package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ProfileExtractions atomic.Int64
	PostExtractions    atomic.Int64
	ItemFaults         atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	SnapshotsStored    atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"profile_extractions", "post_extractions", "item_faults",
	"fetch_requests", "fetch_errors",
	"snapshots_stored",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"profile_extractions": metrics.ProfileExtractions.Load(),
		"post_extractions":    metrics.PostExtractions.Load(),
		"item_faults":         metrics.ItemFaults.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"snapshots_stored":    metrics.SnapshotsStored.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrProfileExtractions() { metrics.ProfileExtractions.Add(1) }
func IncrPostExtractions()    { metrics.PostExtractions.Add(1) }
func IncrFetchRequests()      { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()        { metrics.FetchErrors.Add(1) }
func IncrSnapshotsStored()    { metrics.SnapshotsStored.Add(1) }

// CountItemFault records one faulted list item of the named section.
func CountItemFault(section string) {
	metrics.ItemFaults.Add(1)
	slog.Debug("metrics: item fault", slog.String("section", section))
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
