package segment

import (
	"errors"
	"testing"
)

// newTestStore builds a store over the canonical bright-square scene.
func newTestStore(t *testing.T) *DefineRoomsStore {
	t.Helper()
	r := mustRaster(t, squareImage(100, 100, 35, 35, 30))
	return NewDefineRoomsStore(r, BuildCostPyramid(r))
}

// paintSomething runs one brush gesture so the draft has coverage.
func paintSomething(s *DefineRoomsStore) {
	s.SetActiveTool(ToolPaintbrush)
	s.PointerDown(Pt(0.5, 0.5), PointerState{})
	s.PointerMove(Pt(0.6, 0.5), PointerState{})
	s.PointerUp(Pt(0.6, 0.5), PointerState{})
}

func TestStoreStartEditingThenCancel(t *testing.T) {
	s := newTestStore(t)

	if err := s.StartEditing(""); err != nil {
		t.Fatalf("StartEditing: %v", err)
	}
	if s.Mode() != ModeEditing {
		t.Fatal("store should be editing")
	}
	paintSomething(s)
	s.Cancel()

	if s.Mode() != ModeIdle {
		t.Error("cancel should return to idle")
	}
	if len(s.Rooms()) != 0 {
		t.Error("cancel must leave the room list unchanged")
	}
}

func TestStoreFinishAddsOneRoom(t *testing.T) {
	s := newTestStore(t)
	if err := s.StartEditing(""); err != nil {
		t.Fatalf("StartEditing: %v", err)
	}
	paintSomething(s)

	room, err := s.Finish("Great Hall")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if room.ID == "" {
		t.Error("committed room has no id")
	}
	if room.Name != "Great Hall" {
		t.Errorf("room name = %q", room.Name)
	}
	if !room.Mask.HasCoverage() {
		t.Error("committed mask has no coverage")
	}
	if room.Manifest.RoomID != room.ID || room.Manifest.DataURL == "" {
		t.Error("committed room has no usable manifest")
	}
	if got := len(s.Rooms()); got != 1 {
		t.Fatalf("room list has %d entries, want 1", got)
	}
	if s.Mode() != ModeIdle {
		t.Error("finish should return to idle")
	}
}

func TestStoreEditExistingUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	paintSomething(s)
	original, err := s.Finish("Cellar")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	originalID := original.ID

	if err := s.StartEditing(originalID); err != nil {
		t.Fatalf("StartEditing(existing): %v", err)
	}
	// The draft must not alias the committed mask.
	s.SetActiveTool(ToolPaintbrush)
	s.PointerDown(Pt(0.2, 0.2), PointerState{})
	s.PointerUp(Pt(0.2, 0.2), PointerState{})
	if original.Mask.Contains(Pt(0.2, 0.2)) {
		t.Fatal("editing the draft mutated the committed mask")
	}

	updated, err := s.Finish("")
	if err != nil {
		t.Fatalf("Finish update: %v", err)
	}
	if updated.ID != originalID {
		t.Errorf("update changed the room id: %s -> %s", originalID, updated.ID)
	}
	if updated.Name != "Cellar" {
		t.Errorf("update lost the room name: %q", updated.Name)
	}
	if len(s.Rooms()) != 1 {
		t.Errorf("update must not add a room, list has %d", len(s.Rooms()))
	}
	if !updated.Mask.Contains(Pt(0.2, 0.2)) {
		t.Error("update lost the new coverage")
	}
}

func TestStoreFinishBlockedOnEmptyMask(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")

	if _, err := s.Finish("Empty"); !errors.Is(err, ErrEmptyMask) {
		t.Fatalf("Finish on empty draft: err = %v, want ErrEmptyMask", err)
	}
	if s.Mode() != ModeEditing {
		t.Error("a blocked finish must stay in editing mode")
	}
}

func TestStoreClearSelection(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	paintSomething(s)
	if !s.State().Selection.Mask.HasCoverage() {
		t.Fatal("draft should have coverage before clearing")
	}

	s.ClearSelection()
	if s.State().Selection.Mask.HasCoverage() {
		t.Error("clear should empty the draft mask")
	}
	if s.Mode() != ModeEditing {
		t.Error("clear must keep the editing session open")
	}

	// Still usable: paint again and commit.
	paintSomething(s)
	if _, err := s.Finish("After Clear"); err != nil {
		t.Errorf("Finish after clear: %v", err)
	}
}

func TestStoreFinishWhileIdle(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Finish("x"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("err = %v, want ErrNotEditing", err)
	}
}

func TestStoreStartEditingUnknownRoom(t *testing.T) {
	s := newTestStore(t)
	if err := s.StartEditing("nope"); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("err = %v, want ErrUnknownRoom", err)
	}
	if s.Mode() != ModeIdle {
		t.Error("failed start must stay idle")
	}
}

func TestStoreSecondPointerDownIgnored(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	s.SetActiveTool(ToolLasso)

	s.PointerDown(Pt(0.2, 0.2), PointerState{})
	// Pointer capture is exclusive; a second down is dropped.
	s.PointerDown(Pt(0.9, 0.9), PointerState{})
	s.PointerMove(Pt(0.8, 0.2), PointerState{})
	s.PointerMove(Pt(0.8, 0.8), PointerState{})
	s.PointerUp(Pt(0.2, 0.8), PointerState{})

	mask := s.State().Selection.Mask
	if !mask.Contains(Pt(0.5, 0.5)) {
		t.Error("first gesture should have completed normally")
	}
}

func TestStoreSwitchToolCancelsGesture(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	s.SetActiveTool(ToolLasso)

	s.PointerDown(Pt(0.2, 0.2), PointerState{})
	s.PointerMove(Pt(0.8, 0.2), PointerState{})
	s.SetActiveTool(ToolPaintbrush)

	if s.State().PreviewMask != nil {
		t.Error("tool switch must discard the in-flight preview")
	}
	// The abandoned gesture must not have committed anything.
	if mask := s.State().Selection.Mask; mask.HasCoverage() {
		t.Error("cancelled gesture leaked into the selection mask")
	}
}

func TestStoreCancelGestureIdempotent(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	s.SetActiveTool(ToolPaintbrush)

	s.PointerDown(Pt(0.5, 0.5), PointerState{})
	s.PointerUp(Pt(0.5, 0.5), PointerState{})
	committed := s.State().Selection.Mask.CoveredPixels()

	s.CancelGesture()
	s.CancelGesture()
	if got := s.State().Selection.Mask.CoveredPixels(); got != committed {
		t.Errorf("cancel touched the committed mask: %d -> %d", committed, got)
	}
}

func TestStoreNotifySynchronousAndOrdered(t *testing.T) {
	s := newTestStore(t)

	var order []string
	s.Subscribe(func(State) { order = append(order, "first") })
	s.Subscribe(func(State) { order = append(order, "second") })

	_ = s.StartEditing("")
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("notification order = %v", order)
	}

	// Every mutation notifies immediately; the preview is visible to
	// subscribers during the gesture, never after the type of batching
	// that could leave them stale.
	var sawPreview bool
	s.Subscribe(func(st State) {
		if st.PreviewMask != nil {
			sawPreview = true
		}
	})
	s.SetActiveTool(ToolPaintbrush)
	s.PointerDown(Pt(0.5, 0.5), PointerState{})
	if !sawPreview {
		t.Error("subscribers must observe the preview synchronously on pointer-down")
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	s := newTestStore(t)

	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })
	_ = s.StartEditing("")
	unsub()
	s.Cancel()

	if calls != 1 {
		t.Errorf("unsubscribed callback ran %d times, want 1", calls)
	}
}

func TestStoreDeleteRoomAndVisibility(t *testing.T) {
	s := newTestStore(t)
	_ = s.StartEditing("")
	paintSomething(s)
	room, err := s.Finish("Vault")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if err := s.SetRoomVisibility(room.ID, false); err != nil {
		t.Fatalf("SetRoomVisibility: %v", err)
	}
	if s.Room(room.ID).Visible {
		t.Error("room should be hidden")
	}

	if err := s.DeleteRoom(room.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if len(s.Rooms()) != 0 {
		t.Error("room not deleted")
	}
	if err := s.DeleteRoom(room.ID); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("double delete err = %v, want ErrUnknownRoom", err)
	}
}

func TestStorePrepareImageRejectsNil(t *testing.T) {
	s := NewDefineRoomsStore(nil, nil)
	if err := s.PrepareImage(nil); !errors.Is(err, ErrUndecodableRaster) {
		t.Fatalf("err = %v, want ErrUndecodableRaster", err)
	}

	// Editing still works with an empty draft after the failure.
	if err := s.StartEditing(""); err != nil {
		t.Fatalf("StartEditing after raster failure: %v", err)
	}
	paintSomething(s)
	if _, err := s.Finish("Fallback"); err != nil {
		t.Errorf("Finish after raster failure: %v", err)
	}
}

func TestStoreBusyMessageDuringPrepare(t *testing.T) {
	s := NewDefineRoomsStore(nil, nil)

	var sawBusy, sawClear bool
	s.Subscribe(func(st State) {
		if st.BusyMessage != "" {
			sawBusy = true
		} else if sawBusy {
			sawClear = true
		}
	})

	img := squareImage(64, 64, 16, 16, 32)
	if err := s.PrepareImage(img); err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if !sawBusy || !sawClear {
		t.Errorf("busy transitions not observed: busy=%v clear=%v", sawBusy, sawClear)
	}
}
