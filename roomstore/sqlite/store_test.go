package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mapforge/segment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rooms.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func testRoom(t *testing.T, id, name string) *segment.Room {
	t.Helper()
	mask := segment.NewRoomMask(32, 32)
	for y := 8; y < 24; y++ {
		for x := 8; x < 24; x++ {
			mask.Set(x, y, 255)
		}
	}
	manifest, err := segment.EncodeMask(mask)
	if err != nil {
		t.Fatalf("EncodeMask: %v", err)
	}
	manifest.RoomID = id
	return &segment.Room{
		ID:       id,
		Name:     name,
		Mask:     mask,
		Manifest: manifest,
		Tags:     []string{"dungeon", "level-1"},
		Visible:  true,
	}
}

func TestStoreSaveListRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := testRoom(t, "room-1", "Great Hall")
	second := testRoom(t, "room-2", "Cellar")
	second.Visible = false
	second.Notes = "trapped floor"

	if err := store.SaveRoom(ctx, "map-a", first); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	if err := store.SaveRoom(ctx, "map-a", second); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}

	rooms, err := store.ListRooms(ctx, "map-a")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	got := rooms[1]
	if got.ID != "room-2" || got.Name != "Cellar" || got.Notes != "trapped floor" {
		t.Errorf("room fields lost: %+v", got)
	}
	if got.Visible {
		t.Error("visibility not persisted")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "dungeon" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Mask == nil || !got.Mask.Contains(segment.Pt(0.5, 0.5)) {
		t.Error("decoded mask lost its coverage")
	}
	if got.Mask.Contains(segment.Pt(0.05, 0.05)) {
		t.Error("decoded mask covers a pixel the original did not")
	}
}

func TestStoreSaveUpsertsInPlace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	room := testRoom(t, "room-1", "Great Hall")
	if err := store.SaveRoom(ctx, "map-a", room); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	room.Name = "Renamed Hall"
	if err := store.SaveRoom(ctx, "map-a", room); err != nil {
		t.Fatalf("SaveRoom update: %v", err)
	}

	rooms, err := store.ListRooms(ctx, "map-a")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("upsert duplicated the room: got %d", len(rooms))
	}
	if rooms[0].Name != "Renamed Hall" {
		t.Errorf("name = %q", rooms[0].Name)
	}
}

func TestStoreScopesByMap(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRoom(ctx, "map-a", testRoom(t, "room-1", "A")); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	if err := store.SaveRoom(ctx, "map-b", testRoom(t, "room-2", "B")); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}

	rooms, err := store.ListRooms(ctx, "map-b")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != "room-2" {
		t.Errorf("map-b rooms = %v", rooms)
	}
}

func TestStoreDeleteRoom(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRoom(ctx, "map-a", testRoom(t, "room-1", "A")); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	if err := store.DeleteRoom(ctx, "room-1"); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	rooms, err := store.ListRooms(ctx, "map-a")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("room not deleted: %v", rooms)
	}

	// Absent ids are not an error.
	if err := store.DeleteRoom(ctx, "room-1"); err != nil {
		t.Errorf("delete absent id: %v", err)
	}
}

func TestStoreRejectsIncompleteRooms(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRoom(ctx, "map-a", nil); err == nil {
		t.Error("nil room accepted")
	}
	if err := store.SaveRoom(ctx, "map-a", &segment.Room{ID: "x"}); err == nil {
		t.Error("room without manifest accepted")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("blank path accepted")
	}
}
