package runtime

import (
	"sync"

	"chat-relay/domain"
)

// roomState is the per-room shared state: the sequence counter and a bounded
// tail of recent messages. Its mutex is the only room-scoped critical section
// in the relay, so unrelated rooms never contend with each other.
type roomState struct {
	mu         sync.Mutex
	seq        uint64
	seqLoaded  bool
	halted     bool
	haltDetail string
	tail       []domain.Message
}

// appendTail keeps a bounded window of recently accepted messages so
// subscribe-time replay can bridge writes still in flight to the reconciler.
func (r *roomState) appendTail(m domain.Message, max int) {
	r.tail = append(r.tail, m)
	if len(r.tail) > max {
		r.tail = r.tail[len(r.tail)-max:]
	}
}

// Rooms hands out the per-room state, creating it on first use.
type Rooms struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]*roomState
	tailSize int
}

func NewRooms(tailSize int) *Rooms {
	return &Rooms{rooms: make(map[domain.RoomID]*roomState), tailSize: tailSize}
}

func (r *Rooms) Get(id domain.RoomID) *roomState {
	r.mu.RLock()
	rs, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return rs
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rs, ok = r.rooms[id]; ok {
		return rs
	}
	rs = &roomState{}
	r.rooms[id] = rs
	return rs
}
