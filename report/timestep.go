package report

import (
	"sort"
	"strings"
	"time"

	"github.com/teranos/gridmap/errors"
)

// DefaultTimestepHours is used whenever the snapshot index cannot yield a step
const DefaultTimestepHours = 1.0

// snapshotLayouts are the timestamp formats network exports write snapshot labels in
var snapshotLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ErrIrregularIndex reports a snapshot index that is not a chronological sequence
var ErrIrregularIndex = errors.New("snapshot index is not chronological")

// ParseTimestep derives the representative timestep in hours: the median of
// the differences between consecutive snapshots. It fails when there are fewer
// than two snapshots, a label is not a timestamp, or any step is not positive.
func ParseTimestep(snapshots []string) (float64, error) {
	if len(snapshots) < 2 {
		return 0, errors.Newf("need at least 2 snapshots, got %d", len(snapshots))
	}

	times := make([]time.Time, len(snapshots))
	for i, s := range snapshots {
		t, err := parseSnapshot(s)
		if err != nil {
			return 0, err
		}
		times[i] = t
	}

	diffs := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		diff := times[i].Sub(times[i-1]).Hours()
		if diff <= 0 {
			return 0, errors.Wrapf(ErrIrregularIndex, "snapshot %d (%s) does not follow %s",
				i, snapshots[i], snapshots[i-1])
		}
		diffs[i-1] = diff
	}

	return median(diffs), nil
}

// TimestepHours is ParseTimestep with the 1.0 hour default on any failure
func TimestepHours(snapshots []string) float64 {
	step, err := ParseTimestep(snapshots)
	if err != nil {
		return DefaultTimestepHours
	}
	return step
}

// Energy converts a power series sampled every dt hours into energy
// (MW × h = MWh)
func Energy(series []float64, dt float64) float64 {
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum * dt
}

func parseSnapshot(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range snapshotLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("snapshot %q is not a timestamp", s)
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
