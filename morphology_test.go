package segment

import "testing"

func TestDilateGrowsCoverage(t *testing.T) {
	m := NewRoomMask(64, 64)
	fillRect(m, 30, 30, 33, 33, 255)
	before := m.CoveredPixels()

	Dilate(m, DilateRadius)
	after := m.CoveredPixels()
	if after <= before {
		t.Fatalf("dilation did not grow coverage: %d -> %d", before, after)
	}

	// 5 passes of 3x3 max grow the square by 5 in every direction.
	if m.At(25, 30) == 0 || m.At(38, 33) == 0 || m.At(30, 25) == 0 {
		t.Error("dilation missed pixels 5px out")
	}
	if m.At(24, 30) != 0 {
		t.Error("dilation overgrew past 5px")
	}
}

func TestDilateNoOp(t *testing.T) {
	m := NewRoomMask(32, 32)
	fillRect(m, 10, 10, 20, 20, 255)
	want := m.CoveredPixels()

	Dilate(m, 0)
	Dilate(nil, 3)
	if m.CoveredPixels() != want {
		t.Error("radius 0 must not change the mask")
	}
}

func TestFeatherGradesBoundary(t *testing.T) {
	m := NewRoomMask(64, 64)
	fillRect(m, 20, 20, 43, 43, 255)
	Feather(m, 3)

	if m.At(32, 32) != 255 {
		t.Errorf("deep interior should stay opaque, got %d", m.At(32, 32))
	}
	if m.At(2, 2) != 0 {
		t.Errorf("far exterior should stay clear, got %d", m.At(2, 2))
	}
	edge := m.At(20, 32)
	if edge == 0 || edge == 255 {
		t.Errorf("boundary pixel should be graded, got %d", edge)
	}
}

func TestRefineEdgesBinarizesThenGrades(t *testing.T) {
	m := NewRoomMask(64, 64)
	fillRect(m, 20, 20, 43, 43, 90) // weak alpha selection
	RefineEdges(m, 1.5)

	if m.At(32, 32) != 255 {
		t.Errorf("interior should refine to opaque, got %d", m.At(32, 32))
	}
	if !m.HasCoverage() {
		t.Error("refinement must not erase coverage")
	}
}
