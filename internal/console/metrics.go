package console

import (
	"math"
	"math/rand"
	"time"
)

// MetricState is the simulated telemetry vector shown on the dashboard.
// Nothing here comes from real measurement; values drift inside fixed
// bounds to keep the console alive.
type MetricState struct {
	CPULoad        float64
	FlowVelocity   float64
	Views          int64
	ConversionRate float64
}

// Drift bounds for the clamped fields.
const (
	cpuLoadMin = 0.0
	cpuLoadMax = 100.0
	flowVelMin = 100.0
	flowVelMax = 2000.0
)

// Tick scheduling bounds. A fresh delay is sampled after every tick so
// the movement never looks metronomic.
const (
	tickDelayMin = 1000 * time.Millisecond
	tickDelayMax = 2000 * time.Millisecond
)

// initialMetrics is the fixed boot state.
func initialMetrics() MetricState {
	return MetricState{
		CPULoad:        42.8,
		FlowVelocity:   892,
		Views:          14284,
		ConversionRate: 4.2,
	}
}

// Simulator perturbs a MetricState on each tick. It owns its random
// source so tests can seed it deterministically.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a simulator driven by the given source.
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Tick returns the next metric state. CPULoad drifts by up to ±2 and
// clamps to [0,100]. FlowVelocity drifts by up to ±40, rounds to a
// whole number, and clamps to [100,2000]. Views grows by 0–7 and never
// decreases. ConversionRate drifts by up to ±0.075, rounded to two
// decimals, unclamped.
func (s *Simulator) Tick(prev MetricState) MetricState {
	next := prev
	next.CPULoad = clamp(prev.CPULoad+s.uniform(-2, 2), cpuLoadMin, cpuLoadMax)
	next.FlowVelocity = clamp(math.Round(prev.FlowVelocity+s.uniform(-40, 40)), flowVelMin, flowVelMax)
	next.Views = prev.Views + s.rng.Int63n(8)
	next.ConversionRate = math.Round((prev.ConversionRate+s.uniform(-0.075, 0.075))*100) / 100
	return next
}

// NextDelay samples the delay before the following tick, uniform in
// [1s, 2s).
func (s *Simulator) NextDelay() time.Duration {
	return tickDelayMin + time.Duration(s.rng.Int63n(int64(tickDelayMax-tickDelayMin)))
}

// uniform samples uniformly from [lo, hi).
func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
