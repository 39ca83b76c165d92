package decal

import (
	"log/slog"
	"time"
)

// Stats describes one Registry.Update call. Each registry keeps the stats
// of its last update; nothing is shared between registries.
type Stats struct {
	// Meshes is the number of tracked meshes seen by the update.
	Meshes int

	// Reset is the number of meshes that were reset and re-projected.
	Reset int

	// Clean is the number of meshes skipped because they were not dirty.
	Clean int

	// Failed is the number of meshes that could not be projected.
	Failed int

	// Projectors is the number of projectors that ran.
	Projectors int

	// Passes is the number of projector × mesh passes executed.
	Passes int

	// Totals sums the per-pass counters.
	Totals PassStats

	// Duration is the wall time of the update.
	Duration time.Duration
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("meshes", s.Meshes),
		slog.Int("reset", s.Reset),
		slog.Int("clean", s.Clean),
		slog.Int("failed", s.Failed),
		slog.Int("projectors", s.Projectors),
		slog.Int("passes", s.Passes),
		slog.Int("claimed", s.Totals.Claimed),
		slog.Int("outside", s.Totals.Outside),
		slog.Int("degenerate", s.Totals.Degenerate),
		slog.Duration("duration", s.Duration),
	)
}
