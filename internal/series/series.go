// Package series generates the deterministic synthetic return series and
// equity curves that stand in for historical market data. All output is a
// pure function of its inputs: the same seed always reproduces the same
// sequence, which keeps analytics reproducible across refreshes.
package series

import (
	"math"
	"time"
)

// curveAnchor is the calendar date of the first equity-curve point. The curve
// advances exactly one calendar day per element, weekends included.
var curveAnchor = time.Date(2025, time.October, 22, 0, 0, 0, 0, time.UTC)

// Point is a single dated value on an equity curve.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// RNG is a 32-bit linear congruential generator producing draws in [0, 1).
type RNG struct {
	state uint32
}

// NewRNG seeds a generator. The low 32 bits of seed are used.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Next advances the generator and returns a draw in [0, 1).
func (r *RNG) Next() float64 {
	r.state = 1664525*r.state + 1013904223
	return float64(r.state) / float64(0xFFFFFFFF)
}

// Normal returns a standard-normal variate via the Box-Muller transform,
// consuming two draws. The first draw is clamped away from 0 to keep the
// log finite.
func (r *RNG) Normal() float64 {
	u1 := math.Max(r.Next(), 1e-9)
	u2 := r.Next()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Returns generates a benchmark return series of the given length: a drift
// plus a slow sinusoidal regime plus Gaussian noise scaled by sigma.
func Returns(length int, drift, sigma float64, seed int64) []float64 {
	rng := NewRNG(seed)
	out := make([]float64, length)
	for i := 0; i < length; i++ {
		wave := math.Sin(float64(i)/9) * 0.0012
		out[i] = drift + wave + rng.Normal()*sigma
	}
	return out
}

// PortfolioReturns derives a portfolio series from a base benchmark series:
// dampened benchmark exposure plus alpha, independent noise, and a periodic
// drawdown regime in the first third of every 24-sample cycle.
func PortfolioReturns(base []float64, alpha, noise float64, seed int64) []float64 {
	rng := NewRNG(seed)
	out := make([]float64, len(base))
	for i, b := range base {
		regime := 0.0
		if i%24 < 8 {
			regime = -0.0007
		}
		out[i] = b*0.72 + alpha + regime + rng.Normal()*noise
	}
	return out
}

// Curve compounds a return series from startingValue into a dated equity
// curve. Each point carries the value after that day's return is applied.
func Curve(returns []float64, startingValue float64) []Point {
	date := curveAnchor
	value := startingValue
	out := make([]Point, len(returns))
	for i, ret := range returns {
		value *= 1 + ret
		out[i] = Point{Date: date.Format("2006-01-02"), Value: value}
		date = date.AddDate(0, 0, 1)
	}
	return out
}
