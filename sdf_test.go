package segment

import (
	"math"
	"testing"
	"time"
)

func TestSignedDistanceFieldSigns(t *testing.T) {
	m := NewRoomMask(128, 128)
	fillRect(m, 40, 40, 87, 87, 255)
	sdf := ComputeSignedDistanceField(m.Data(), 128, 128)

	tests := []struct {
		name   string
		x, y   int
		inside bool
	}{
		{"deep interior", 64, 64, true},
		{"interior near edge", 42, 64, true},
		{"exterior near edge", 38, 64, false},
		{"far exterior", 5, 5, false},
		{"corner exterior", 120, 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sdf.At(tt.x, tt.y)
			if tt.inside && v >= 0 {
				t.Errorf("sdf(%d,%d) = %f, want negative (inside)", tt.x, tt.y, v)
			}
			if !tt.inside && v <= 0 {
				t.Errorf("sdf(%d,%d) = %f, want positive (outside)", tt.x, tt.y, v)
			}
		})
	}
}

func TestSignedDistanceFieldMagnitude(t *testing.T) {
	m := NewRoomMask(128, 128)
	fillRect(m, 40, 40, 87, 87, 255)
	sdf := ComputeSignedDistanceField(m.Data(), 128, 128)

	// 24 pixels left of the region: distance must be ~24 within the
	// chamfer approximation error (a few percent).
	got := float64(sdf.At(16, 64))
	if math.Abs(got-24) > 2 {
		t.Errorf("exterior distance = %f, want ~24", got)
	}

	// Center of a 48px square: ~24 pixels from every side.
	got = float64(sdf.At(64, 64))
	if math.Abs(got+24) > 2 {
		t.Errorf("interior distance = %f, want ~-24", got)
	}
}

func TestSignedDistanceFieldContains(t *testing.T) {
	m := NewRoomMask(100, 100)
	fillRect(m, 30, 30, 69, 69, 255)
	sdf := ComputeSignedDistanceField(m.Data(), 100, 100)

	if !sdf.Contains(Pt(0.5, 0.5)) {
		t.Error("center should be inside")
	}
	if sdf.Contains(Pt(0.05, 0.05)) {
		t.Error("corner should be outside")
	}
}

func TestSignedDistanceFieldLatency(t *testing.T) {
	if testing.Short() {
		t.Skip("latency test skipped in short mode")
	}
	m := NewRoomMask(128, 128)
	fillRect(m, 30, 30, 90, 90, 255)

	began := time.Now()
	ComputeSignedDistanceField(m.Data(), 128, 128)
	if elapsed := time.Since(began); elapsed > 60*time.Millisecond {
		t.Errorf("sdf took %v, budget is 60ms", elapsed)
	}
}

func TestSignedDistanceFieldCoverage(t *testing.T) {
	m := NewRoomMask(100, 100)
	fillRect(m, 30, 30, 69, 69, 255)
	sdf := ComputeSignedDistanceField(m.Data(), 100, 100)

	if got := sdf.Coverage(50, 50, 2); got != 1 {
		t.Errorf("deep interior coverage = %f, want 1", got)
	}
	if got := sdf.Coverage(5, 5, 2); got != 0 {
		t.Errorf("far exterior coverage = %f, want 0", got)
	}
	edge := sdf.Coverage(30, 50, 2)
	if edge <= 0 || edge >= 1 {
		t.Errorf("boundary coverage = %f, want graded", edge)
	}
}

func TestSmoothstepCoverage(t *testing.T) {
	tests := []struct {
		name string
		sdf  float64
		want float64
	}{
		{"fully inside", -2.0, 1.0},
		{"fully outside", 2.0, 0.0},
		{"at boundary", 0.0, 0.5},
		{"at inner edge", -1.0, 1.0},
		{"at outer edge", 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := smoothstepCoverage(tt.sdf, 1.0)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("smoothstepCoverage(%f, 1) = %f, want %f", tt.sdf, got, tt.want)
			}
		})
	}
}

func TestSmoothstepCoverageMonotonic(t *testing.T) {
	// Coverage must be monotonically decreasing as sdf increases.
	prev := 1.0
	for sdf := -1.5; sdf <= 1.5; sdf += 0.01 {
		curr := smoothstepCoverage(sdf, 1.0)
		if curr > prev+1e-10 {
			t.Errorf("coverage increased at sdf=%f: prev=%f, curr=%f", sdf, prev, curr)
		}
		prev = curr
	}
}
