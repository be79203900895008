package navigator

import "sync/atomic"

// Mount tracks whether the host that started a tree fetch is still around.
// Each Begin invalidates tickets handed out before it, as does Unmount.
type Mount struct {
	generation atomic.Uint64
}

// Ticket identifies one fetch started against a Mount
type Ticket struct {
	mount      *Mount
	generation uint64
}

func (m *Mount) Begin() Ticket {
	return Ticket{mount: m, generation: m.generation.Add(1)}
}

func (m *Mount) Unmount() {
	m.generation.Add(1)
}

// Current reports whether the ticket still belongs to the live mount
func (t Ticket) Current() bool {
	return t.mount != nil && t.mount.generation.Load() == t.generation
}
