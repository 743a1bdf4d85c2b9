package segment

import (
	"image"

	"github.com/google/uuid"
)

// workingMaxDim bounds the working raster resolution. Maps larger than
// this on a side are resampled down before segmentation so flood fills
// and pyramid builds stay within their latency budgets; normalized
// coordinates make the resample invisible to callers.
const workingMaxDim = 2048

// Mode is the coarse state of the define-rooms editor.
type Mode int

const (
	// ModeIdle means no room draft is open.
	ModeIdle Mode = iota

	// ModeEditing means a draft mask is being authored.
	ModeEditing
)

// Room is a committed, persistable room definition.
type Room struct {
	ID       string
	Name     string
	Mask     *RoomMask
	Manifest Manifest
	Notes    string
	Tags     []string
	Visible  bool
}

// State is the snapshot handed to subscribers after every mutation.
type State struct {
	Mode      Mode
	Selection SelectionState
	// PreviewMask is non-nil only while a gesture is in flight.
	PreviewMask *RoomMask
	// BusyMessage is non-empty while synchronous CPU-bound work
	// (pyramid construction) is running.
	BusyMessage string
}

// DefineRoomsStore coordinates the define-rooms authoring step: it
// owns the active draft, the active tool and its in-flight gesture,
// and the committed room list.
//
// The store performs no I/O; persistence happens in the calling layer
// strictly after Finish. All mutations are synchronous and notify
// subscribers immediately, in registration order, never batched, so a
// renderer can never observe stale preview state.
//
// The store is single-threaded by design: it is driven from one
// pointer-event goroutine and holds no locks.
type DefineRoomsStore struct {
	raster  *Raster
	pyramid *CostPyramid

	mode      Mode
	selection SelectionState
	preview   *RoomMask
	busy      string

	rooms []*Room

	editingRoomID string
	tool          Tool
	gestureLive   bool

	subscribers []func(State)
	nextSubID   int
}

// NewDefineRoomsStore creates a store over a prepared raster and cost
// pyramid. Either may be nil (for example after an undecodable upload);
// editing still works with an empty draft and tools degrade per their
// contracts.
func NewDefineRoomsStore(r *Raster, p *CostPyramid) *DefineRoomsStore {
	return &DefineRoomsStore{
		raster:    r,
		pyramid:   p,
		selection: DefaultSelectionState(),
	}
}

// PrepareImage (re)derives the raster and cost pyramid from a map
// image. The busy message is raised for the duration of the build so
// the UI can surface progress without blocking pointer handling
// elsewhere.
//
// An undecodable image returns ErrUndecodableRaster and leaves the
// store usable: editing mode, the draft, and the room list all
// survive, so the author can retry with a different image or tool.
func (s *DefineRoomsStore) PrepareImage(img image.Image, opts ...Option) error {
	s.busy = "Analyzing map edges"
	s.notify()

	raster, err := NewWorkingRaster(img, workingMaxDim)
	if err != nil {
		s.busy = ""
		s.notify()
		Logger().Warn("map image rejected", "err", err)
		return err
	}
	s.raster = raster
	s.pyramid = BuildCostPyramid(raster, opts...)
	s.busy = ""
	s.notify()
	return nil
}

// Subscribe registers fn to run synchronously after every mutation,
// and returns the matching unsubscribe function. Callbacks run in
// registration order.
func (s *DefineRoomsStore) Subscribe(fn func(State)) func() {
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		if idx < len(s.subscribers) && s.subscribers[idx] != nil {
			s.subscribers[idx] = nil
		}
	}
}

// notify delivers the current state to every live subscriber, in order.
func (s *DefineRoomsStore) notify() {
	state := s.State()
	for _, fn := range s.subscribers {
		if fn != nil {
			fn(state)
		}
	}
}

// State returns the current editor state snapshot.
func (s *DefineRoomsStore) State() State {
	return State{
		Mode:        s.mode,
		Selection:   s.selection,
		PreviewMask: s.preview,
		BusyMessage: s.busy,
	}
}

// Mode returns the current editor mode.
func (s *DefineRoomsStore) Mode() Mode { return s.mode }

// StartEditing opens a draft. An empty roomID starts a new room with an
// empty mask; otherwise the identified room's mask is deep-copied into
// the draft, so the committed room and the draft never alias a buffer.
// Returns ErrUnknownRoom for an id not in the list. Calling while
// already editing cancels the previous draft first.
func (s *DefineRoomsStore) StartEditing(roomID string) error {
	if s.mode == ModeEditing {
		s.Cancel()
	}

	var mask *RoomMask
	if roomID != "" {
		room := s.findRoom(roomID)
		if room == nil {
			return ErrUnknownRoom
		}
		mask = room.Mask.Clone()
	} else {
		mask = NewRoomMask(s.maskSize())
	}

	s.mode = ModeEditing
	s.editingRoomID = roomID
	s.selection = DefaultSelectionState()
	s.selection.Mask = mask
	s.tool = toolForID(s.selection.ActiveTool)
	s.preview = nil
	s.gestureLive = false
	s.notify()
	return nil
}

// maskSize returns the draft mask dimensions: the raster's, or a
// nominal fallback when no raster is loaded.
func (s *DefineRoomsStore) maskSize() (int, int) {
	if s.raster != nil {
		return s.raster.Width(), s.raster.Height()
	}
	return 256, 256
}

// SetActiveTool switches the active tool. An in-flight gesture, if
// any, is cancelled first; the committed draft mask is untouched.
// Unrecognized ids select SmartLasso.
func (s *DefineRoomsStore) SetActiveTool(id ToolID) {
	if s.mode != ModeEditing {
		return
	}
	s.CancelGesture()
	s.selection.ActiveTool = id
	s.tool = toolForID(id)
	s.notify()
}

// SetSelection replaces the tool parameters (brush radius, wand
// tolerance, and so on), preserving the draft mask.
func (s *DefineRoomsStore) SetSelection(sel SelectionState) {
	if s.mode != ModeEditing {
		return
	}
	mask := s.selection.Mask
	s.selection = sel
	s.selection.Mask = mask
	if s.tool == nil || s.tool.ID() != sel.ActiveTool {
		s.CancelGesture()
		s.tool = toolForID(sel.ActiveTool)
	}
	s.notify()
}

// PointerDown begins a tool gesture at the normalized point. A second
// pointer-down during a live gesture is ignored: pointer capture is
// exclusive.
func (s *DefineRoomsStore) PointerDown(pt Point, ps PointerState) {
	if s.mode != ModeEditing || s.gestureLive {
		return
	}
	s.gestureLive = true
	s.preview = s.selection.Mask.Clone()
	s.tool.PointerDown(s.toolContext(), pt, ps)
	s.notify()
}

// PointerMove extends the live gesture. No-op when no gesture is live.
func (s *DefineRoomsStore) PointerMove(pt Point, ps PointerState) {
	if !s.gestureLive {
		return
	}
	s.tool.PointerMove(s.toolContext(), pt, ps)
	s.notify()
}

// PointerUp completes the live gesture and promotes the preview into
// the working selection mask.
func (s *DefineRoomsStore) PointerUp(pt Point, ps PointerState) {
	if !s.gestureLive {
		return
	}
	s.tool.PointerUp(s.toolContext(), pt, ps)
	s.gestureLive = false
	s.selection.Mask = s.preview
	s.preview = nil
	s.notify()
}

// CancelGesture discards the in-flight preview, if any. The committed
// draft mask is untouched. Idempotent: Escape and pointer-leave may
// both fire.
func (s *DefineRoomsStore) CancelGesture() {
	if s.tool != nil {
		s.tool.Cancel(s.toolContext())
	}
	if !s.gestureLive && s.preview == nil {
		return
	}
	s.gestureLive = false
	s.preview = nil
	s.notify()
}

// ClearSelection empties the draft mask, cancelling any in-flight
// gesture first. The author keeps editing from a blank slate; committed
// rooms are untouched.
func (s *DefineRoomsStore) ClearSelection() {
	if s.mode != ModeEditing {
		return
	}
	s.CancelGesture()
	if s.selection.Mask != nil {
		s.selection.Mask.Clear()
	}
	s.notify()
}

// toolContext assembles the context handed to tool callbacks.
func (s *DefineRoomsStore) toolContext() *ToolContext {
	return &ToolContext{
		Raster:    s.raster,
		Pyramid:   s.pyramid,
		Selection: &s.selection,
		Preview:   s.preview,
	}
}

// Finish commits the draft as a room and returns to idle. A new draft
// becomes a new room with a fresh id; an existing room is updated in
// place, preserving its id, notes, tags, and visibility.
//
// A draft with no coverage (or a degenerate, sub-triangle outline)
// returns ErrEmptyMask and stays in editing mode; callers disable the
// commit affordance on empty drafts instead of surfacing the error.
func (s *DefineRoomsStore) Finish(name string) (*Room, error) {
	if s.mode != ModeEditing {
		return nil, ErrNotEditing
	}
	s.CancelGesture()

	mask := s.selection.Mask
	if mask == nil || !mask.HasCoverage() {
		return nil, ErrEmptyMask
	}
	if len(MaskToPolygon(mask)) < 3 {
		return nil, ErrEmptyMask
	}

	manifest, err := EncodeMask(mask)
	if err != nil {
		return nil, err
	}

	var room *Room
	if s.editingRoomID != "" {
		room = s.findRoom(s.editingRoomID)
		if room == nil {
			return nil, ErrUnknownRoom
		}
		room.Mask = mask
		if name != "" {
			room.Name = name
		}
	} else {
		room = &Room{
			ID:      uuid.NewString(),
			Name:    name,
			Mask:    mask,
			Visible: true,
		}
		s.rooms = append(s.rooms, room)
	}
	manifest.RoomID = room.ID
	room.Manifest = manifest

	s.mode = ModeIdle
	s.editingRoomID = ""
	s.selection = DefaultSelectionState()
	s.preview = nil
	s.tool = nil
	s.notify()
	return room, nil
}

// Cancel discards the draft and returns to idle. The committed room
// list is byte-for-byte unchanged. Idempotent.
func (s *DefineRoomsStore) Cancel() {
	if s.mode != ModeEditing {
		return
	}
	s.CancelGesture()
	s.mode = ModeIdle
	s.editingRoomID = ""
	s.selection = DefaultSelectionState()
	s.preview = nil
	s.tool = nil
	s.notify()
}

// Rooms returns the committed rooms in creation order. The slice is a
// copy; the rooms themselves are shared and must be treated read-only
// by consumers.
func (s *DefineRoomsStore) Rooms() []*Room {
	out := make([]*Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Room returns the committed room with the given id, or nil.
func (s *DefineRoomsStore) Room(id string) *Room {
	return s.findRoom(id)
}

// DeleteRoom removes a committed room by id.
func (s *DefineRoomsStore) DeleteRoom(id string) error {
	for i, room := range s.rooms {
		if room.ID == id {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			if s.editingRoomID == id {
				// The draft keeps its deep-copied mask but will commit
				// as a new room.
				s.editingRoomID = ""
			}
			s.notify()
			return nil
		}
	}
	return ErrUnknownRoom
}

// SetRoomVisibility toggles whether a committed room is revealed.
func (s *DefineRoomsStore) SetRoomVisibility(id string, visible bool) error {
	room := s.findRoom(id)
	if room == nil {
		return ErrUnknownRoom
	}
	room.Visible = visible
	s.notify()
	return nil
}

// SetRoomMeta updates wizard-owned metadata on a committed room.
func (s *DefineRoomsStore) SetRoomMeta(id, name, notes string, tags []string) error {
	room := s.findRoom(id)
	if room == nil {
		return ErrUnknownRoom
	}
	room.Name = name
	room.Notes = notes
	room.Tags = append([]string(nil), tags...)
	s.notify()
	return nil
}

func (s *DefineRoomsStore) findRoom(id string) *Room {
	for _, room := range s.rooms {
		if room.ID == id {
			return room
		}
	}
	return nil
}
