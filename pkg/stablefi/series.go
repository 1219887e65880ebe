package stablefi

import (
	"hash/fnv"
	"math"
	"time"
)

// The mock series generator fabricates a plausible-looking value trajectory
// ending at a known present-day value. It is a presentation placeholder for
// an absent price-history feed; the output carries no financial meaning.

// dateLabelFormat renders the day labels shown on the chart x-axis.
const dateLabelFormat = "01-02"

// walkRand is a small splitmix64 generator. The walk must be reproducible
// from its seed, so a seedable generator is used instead of the global
// source.
type walkRand struct {
	state uint64
}

func newWalkRand(seed uint64) *walkRand {
	return &walkRand{state: seed}
}

func (r *walkRand) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// float64 returns a uniform value in [0, 1).
func (r *walkRand) float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// SeedForEntity derives a stable walk seed from an entity key, so the same
// wallet set always draws the same curve shapes.
func SeedForEntity(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// GenerateSeries produces days+1 points ending today at exactly
// currentValue. See generateSeries for the walk contract.
func GenerateSeries(currentValue, volatility float64, days int, seed uint64) []SeriesPoint {
	return generateSeries(currentValue, volatility, days, seed, time.Now())
}

// generateSeries walks forward one day at a time from a seeded fraction
// (70-95%) of the anchor value, applying a signed perturbation proportional
// to volatility times the running value. The driver is biased slightly
// negative so the walk tends to approach the anchor from below. The running
// value is clamped at zero and the final point is forced to the anchor.
func generateSeries(currentValue, volatility float64, days int, seed uint64, end time.Time) []SeriesPoint {
	if days < 0 {
		days = 0
	}
	rng := newWalkRand(seed)
	value := currentValue * (0.70 + 0.25*rng.float64())

	points := make([]SeriesPoint, 0, days+1)
	for i := days; i >= 0; i-- {
		change := (rng.float64() - 0.4) * volatility * value
		value = math.Max(value+change, 0)
		points = append(points, SeriesPoint{
			Date:  end.AddDate(0, 0, -i).Format(dateLabelFormat),
			Value: round2(value),
		})
	}

	// The series must end at the known present value regardless of drift.
	points[len(points)-1].Value = currentValue
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
