package viewer

import "testing"

// TestDoubleTap_TogglesAndResetsPan verifies 1x -> 2x -> 1x with the pan
// cleared on the way back.
func TestDoubleTap_TogglesAndResetsPan(t *testing.T) {
	s := Open()
	if s.Scale() != 1 {
		t.Fatalf("fresh scale = %v, want 1", s.Scale())
	}

	s = s.DoubleTap()
	if s.Scale() != DoubleTapTo {
		t.Fatalf("after double tap scale = %v, want %v", s.Scale(), DoubleTapTo)
	}

	s = s.DragStart(10, 10).DragMove(30, 25).DragEnd()
	if x, y := s.Pan(); x == 0 && y == 0 {
		t.Fatal("drag while zoomed should pan")
	}

	s = s.DoubleTap()
	if s.Scale() != 1 {
		t.Fatalf("second double tap scale = %v, want 1", s.Scale())
	}
	if x, y := s.Pan(); x != 0 || y != 0 {
		t.Errorf("pan after returning to 1x = (%v, %v), want (0, 0)", x, y)
	}
}

// TestWheel_ClampsToRange verifies repeated scrolling never leaves the
// configured zoom range.
func TestWheel_ClampsToRange(t *testing.T) {
	s := Open()
	for i := 0; i < 100; i++ {
		s = s.Wheel(-1) // zoom in
	}
	if s.Scale() != MaxScale {
		t.Errorf("zoomed-in scale = %v, want %v", s.Scale(), MaxScale)
	}

	for i := 0; i < 100; i++ {
		s = s.Wheel(1) // zoom out
	}
	if s.Scale() != MinScale {
		t.Errorf("zoomed-out scale = %v, want %v", s.Scale(), MinScale)
	}
}

// TestPinch_ScalesByRatio verifies pinch zoom follows the touch distance
// ratio and clamps.
func TestPinch_ScalesByRatio(t *testing.T) {
	s := Open().PinchStart(100)
	s = s.PinchMove(200)
	if s.Scale() != 2 {
		t.Errorf("pinch out 2x: scale = %v, want 2", s.Scale())
	}

	s = s.PinchMove(1000)
	if s.Scale() != MaxScale {
		t.Errorf("extreme pinch should clamp to %v, got %v", MaxScale, s.Scale())
	}

	s = s.PinchEnd()
	s = s.PinchMove(50) // no PinchStart, must be a no-op
	if s.Scale() != MaxScale {
		t.Errorf("pinch move without start changed scale to %v", s.Scale())
	}
}

// TestDrag_RequiresZoom verifies panning is unavailable at 1x.
func TestDrag_RequiresZoom(t *testing.T) {
	s := Open().DragStart(5, 5).DragMove(50, 50)
	if x, y := s.Pan(); x != 0 || y != 0 {
		t.Errorf("pan at 1x = (%v, %v), want (0, 0)", x, y)
	}
}

// TestDragMove_TracksPointer verifies pan follows the pointer delta.
func TestDragMove_TracksPointer(t *testing.T) {
	s := Open().DoubleTap().DragStart(10, 10).DragMove(15, 12)
	x, y := s.Pan()
	if x != 5 || y != 2 {
		t.Errorf("pan = (%v, %v), want (5, 2)", x, y)
	}

	s = s.DragEnd().DragMove(100, 100)
	if nx, ny := s.Pan(); nx != x || ny != y {
		t.Error("drag move after drag end should not pan")
	}
}

// TestClose_DiscardsState verifies closing resets everything for next open.
func TestClose_DiscardsState(t *testing.T) {
	s := Open().DoubleTap().DragStart(0, 0).DragMove(40, 40).Close()
	if s.Scale() != 1 {
		t.Errorf("scale after close = %v, want 1", s.Scale())
	}
	if x, y := s.Pan(); x != 0 || y != 0 {
		t.Errorf("pan after close = (%v, %v), want (0, 0)", x, y)
	}
}

// TestZeroValue_IsUsable verifies the zero value behaves as a fresh viewer.
func TestZeroValue_IsUsable(t *testing.T) {
	var s State
	if s.Scale() != 1 {
		t.Errorf("zero value scale = %v, want 1", s.Scale())
	}
}
