// Package sqlite provides SQLite-backed persistence for committed
// rooms. It is the calling-layer adapter the segmentation engine stays
// ignorant of: rooms are written strictly after DefineRoomsStore.Finish
// and read back through their encoded mask manifests, so the engine
// never performs I/O itself.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mapforge/segment"
)

// schema is applied on open. The mask travels as its portable manifest
// (content key + PNG data URL), so any consumer with a PNG decoder can
// render it without the segmentation engine.
const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id         TEXT PRIMARY KEY,
	map_id     TEXT NOT NULL,
	name       TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '',
	visible    INTEGER NOT NULL DEFAULT 1,
	mask_key   TEXT NOT NULL,
	mask_data  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS rooms_map_id ON rooms (map_id);
`

// Store provides SQLite-backed persistence for room definitions.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a room store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	// modernc.org/sqlite takes pragmas as _pragma=name(value) query
	// parameters.
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRoom upserts a committed room under the given map id. The room
// must carry its encoded manifest (Finish always sets one).
func (s *Store) SaveRoom(ctx context.Context, mapID string, room *segment.Room) error {
	if room == nil || room.ID == "" {
		return fmt.Errorf("room with id is required")
	}
	if room.Manifest.DataURL == "" {
		return fmt.Errorf("room %s has no encoded mask", room.ID)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rooms (id, map_id, name, notes, tags, visible, mask_key, mask_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   notes = excluded.notes,
		   tags = excluded.tags,
		   visible = excluded.visible,
		   mask_key = excluded.mask_key,
		   mask_data = excluded.mask_data`,
		room.ID, mapID, room.Name, room.Notes,
		strings.Join(room.Tags, ","), boolToInt(room.Visible),
		room.Manifest.Key, room.Manifest.DataURL,
	)
	if err != nil {
		return fmt.Errorf("save room %s: %w", room.ID, err)
	}
	return nil
}

// ListRooms loads every room persisted under the map id, decoding the
// stored manifests back into masks.
func (s *Store) ListRooms(ctx context.Context, mapID string) ([]*segment.Room, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, notes, tags, visible, mask_key, mask_data
		 FROM rooms WHERE map_id = ? ORDER BY rowid`,
		mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []*segment.Room
	for rows.Next() {
		var (
			room    segment.Room
			tags    string
			visible int64
		)
		if err := rows.Scan(&room.ID, &room.Name, &room.Notes, &tags,
			&visible, &room.Manifest.Key, &room.Manifest.DataURL); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		room.Manifest.RoomID = room.ID
		room.Visible = visible != 0
		if tags != "" {
			room.Tags = strings.Split(tags, ",")
		}
		mask, err := segment.DecodeMask(room.Manifest)
		if err != nil {
			return nil, fmt.Errorf("decode mask for room %s: %w", room.ID, err)
		}
		room.Mask = mask
		out = append(out, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return out, nil
}

// DeleteRoom removes a persisted room by id. Deleting an absent id is
// not an error.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
