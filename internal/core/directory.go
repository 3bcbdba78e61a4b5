package core

import "sync"

// MaxRecentMessages bounds the per-room in-memory message cache. Eviction is
// size-based FIFO; durability is the store's concern, not the cache's.
const MaxRecentMessages = 100

type roomState struct {
	participants map[string]Identity
	recent       []ChatMessage // oldest first
}

// Directory maps room identifiers to their participant sets and bounded
// recent-message caches. A room with no participants is deleted immediately;
// rooms exist only while at least one member does.
type Directory struct {
	mu          sync.RWMutex
	rooms       map[string]*roomState
	memberRooms map[string]map[string]struct{} // identity ID -> room IDs
}

// NewDirectory constructs an empty room directory.
func NewDirectory() *Directory {
	return &Directory{
		rooms:       make(map[string]*roomState),
		memberRooms: make(map[string]map[string]struct{}),
	}
}

// Join adds identity to room, creating the room on first join. Joining twice
// has the same effect as joining once; the return value reports whether the
// identity is newly added.
func (d *Directory) Join(room string, id Identity) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	rs, ok := d.rooms[room]
	if !ok {
		rs = &roomState{participants: make(map[string]Identity)}
		d.rooms[room] = rs
	}
	if _, exists := rs.participants[id.ID]; exists {
		return false
	}
	rs.participants[id.ID] = id

	if d.memberRooms[id.ID] == nil {
		d.memberRooms[id.ID] = make(map[string]struct{})
	}
	d.memberRooms[id.ID][room] = struct{}{}
	return true
}

// Leave removes identity from room and reports whether the room is now empty.
// An empty room is deleted before Leave returns. Unknown rooms and unknown
// members are tolerated silently.
func (d *Directory) Leave(room, identityID string) (roomNowEmpty bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rs, ok := d.rooms[room]
	if !ok {
		return false
	}
	delete(rs.participants, identityID)

	if mr := d.memberRooms[identityID]; mr != nil {
		delete(mr, room)
		if len(mr) == 0 {
			delete(d.memberRooms, identityID)
		}
	}

	if len(rs.participants) == 0 {
		delete(d.rooms, room)
		return true
	}
	return false
}

// Participants returns a snapshot of the room's members, empty if the room
// does not exist.
func (d *Directory) Participants(room string) []Identity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rs, ok := d.rooms[room]
	if !ok {
		return nil
	}
	out := make([]Identity, 0, len(rs.participants))
	for _, id := range rs.participants {
		out = append(out, id)
	}
	return out
}

// RoomsOf returns the rooms the identity currently belongs to.
func (d *Directory) RoomsOf(identityID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	mr := d.memberRooms[identityID]
	out := make([]string, 0, len(mr))
	for room := range mr {
		out = append(out, room)
	}
	return out
}

// Exists reports whether the room has at least one participant.
func (d *Directory) Exists(room string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.rooms[room]
	return ok
}

// AppendMessage mirrors a persisted message into the room's bounded cache,
// evicting the oldest entry past the size limit. Messages for rooms that no
// longer exist are dropped.
func (d *Directory) AppendMessage(room string, msg ChatMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rs, ok := d.rooms[room]
	if !ok {
		return
	}
	rs.recent = append(rs.recent, msg)
	if len(rs.recent) > MaxRecentMessages {
		// Shift in place so the backing array does not grow without bound.
		copy(rs.recent, rs.recent[1:])
		rs.recent = rs.recent[:MaxRecentMessages]
	}
}

// RecentMessages returns up to limit of the room's most recent messages,
// oldest first.
func (d *Directory) RecentMessages(room string, limit int) []ChatMessage {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rs, ok := d.rooms[room]
	if !ok || limit <= 0 {
		return nil
	}
	n := len(rs.recent)
	if limit > n {
		limit = n
	}
	out := make([]ChatMessage, limit)
	copy(out, rs.recent[n-limit:])
	return out
}
