package console

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func testSimulator(seed int64) *Simulator {
	return NewSimulator(rand.New(rand.NewSource(seed)))
}

func TestInitialMetrics(t *testing.T) {
	m := initialMetrics()
	if m.CPULoad != 42.8 {
		t.Errorf("CPULoad = %v, want 42.8", m.CPULoad)
	}
	if m.FlowVelocity != 892 {
		t.Errorf("FlowVelocity = %v, want 892", m.FlowVelocity)
	}
	if m.Views != 14284 {
		t.Errorf("Views = %d, want 14284", m.Views)
	}
	if m.ConversionRate != 4.2 {
		t.Errorf("ConversionRate = %v, want 4.2", m.ConversionRate)
	}
}

func TestTickStaysInBounds(t *testing.T) {
	sim := testSimulator(1)
	state := initialMetrics()

	for i := 0; i < 5000; i++ {
		state = sim.Tick(state)
		if state.CPULoad < 0 || state.CPULoad > 100 {
			t.Fatalf("tick %d: CPULoad = %v, want within [0,100]", i, state.CPULoad)
		}
		if state.FlowVelocity < 100 || state.FlowVelocity > 2000 {
			t.Fatalf("tick %d: FlowVelocity = %v, want within [100,2000]", i, state.FlowVelocity)
		}
	}
}

func TestTickViewsMonotonic(t *testing.T) {
	sim := testSimulator(2)
	state := initialMetrics()

	for i := 0; i < 5000; i++ {
		prev := state.Views
		state = sim.Tick(state)
		if state.Views < prev {
			t.Fatalf("tick %d: Views decreased from %d to %d", i, prev, state.Views)
		}
		if state.Views-prev > 7 {
			t.Fatalf("tick %d: Views grew by %d, want at most 7", i, state.Views-prev)
		}
	}
}

func TestTickFlowVelocityWholeNumbers(t *testing.T) {
	sim := testSimulator(3)
	state := initialMetrics()

	for i := 0; i < 1000; i++ {
		state = sim.Tick(state)
		if state.FlowVelocity != math.Round(state.FlowVelocity) {
			t.Fatalf("tick %d: FlowVelocity = %v, want a whole number", i, state.FlowVelocity)
		}
	}
}

func TestTickConversionRateTwoDecimals(t *testing.T) {
	sim := testSimulator(4)
	state := initialMetrics()

	for i := 0; i < 1000; i++ {
		state = sim.Tick(state)
		scaled := state.ConversionRate * 100
		if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Fatalf("tick %d: ConversionRate = %v, want two-decimal precision", i, state.ConversionRate)
		}
	}
}

// TestTickFromDocumentedState walks one tick from the boot vector and
// checks every per-field drift bound.
func TestTickFromDocumentedState(t *testing.T) {
	start := MetricState{CPULoad: 42.8, FlowVelocity: 892, Views: 14284, ConversionRate: 4.2}

	for seed := int64(0); seed < 50; seed++ {
		sim := testSimulator(seed)
		next := sim.Tick(start)

		if next.CPULoad < 0 || next.CPULoad > 100 {
			t.Errorf("seed %d: CPULoad = %v, want within [0,100]", seed, next.CPULoad)
		}
		if math.Abs(next.CPULoad-start.CPULoad) > 2 {
			t.Errorf("seed %d: CPULoad moved by %v, want at most 2", seed, math.Abs(next.CPULoad-start.CPULoad))
		}
		if next.FlowVelocity < 100 || next.FlowVelocity > 2000 {
			t.Errorf("seed %d: FlowVelocity = %v, want within [100,2000]", seed, next.FlowVelocity)
		}
		if math.Abs(next.FlowVelocity-start.FlowVelocity) > 40 {
			t.Errorf("seed %d: FlowVelocity moved by %v, want at most 40", seed, math.Abs(next.FlowVelocity-start.FlowVelocity))
		}
		if next.Views < 14284 {
			t.Errorf("seed %d: Views = %d, want >= 14284", seed, next.Views)
		}
		if math.Abs(next.ConversionRate-start.ConversionRate) > 0.08 {
			t.Errorf("seed %d: ConversionRate moved by %v, want at most 0.08", seed, math.Abs(next.ConversionRate-start.ConversionRate))
		}
	}
}

func TestTickClampsAtEdges(t *testing.T) {
	sim := testSimulator(5)

	low := MetricState{CPULoad: 0, FlowVelocity: 100, Views: 0, ConversionRate: 0}
	high := MetricState{CPULoad: 100, FlowVelocity: 2000, Views: 0, ConversionRate: 0}

	for i := 0; i < 500; i++ {
		low = sim.Tick(low)
		if low.CPULoad < 0 || low.FlowVelocity < 100 {
			t.Fatalf("tick %d near lower edge: got %+v", i, low)
		}
		low.CPULoad = 0
		low.FlowVelocity = 100

		high = sim.Tick(high)
		if high.CPULoad > 100 || high.FlowVelocity > 2000 {
			t.Fatalf("tick %d near upper edge: got %+v", i, high)
		}
		high.CPULoad = 100
		high.FlowVelocity = 2000
	}
}

func TestNextDelayRange(t *testing.T) {
	sim := testSimulator(6)

	for i := 0; i < 1000; i++ {
		d := sim.NextDelay()
		if d < time.Second || d >= 2*time.Second {
			t.Fatalf("NextDelay() = %v, want within [1s, 2s)", d)
		}
	}
}

func TestNextDelayJitters(t *testing.T) {
	sim := testSimulator(7)

	seen := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		seen[sim.NextDelay()] = true
	}
	if len(seen) < 2 {
		t.Errorf("NextDelay produced %d distinct values over 100 samples, want jitter", len(seen))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
		{42.8, 0, 100, 42.8},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
