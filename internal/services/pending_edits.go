package services

import "sync"

// Edit kinds.
const (
	EditLeadStage   = "lead_stage"
	EditOrderStatus = "order_status"
)

// PendingEdits buffers unconfirmed stage/status edits keyed by entity id.
// A draft is invisible to the store until confirmed and vanishes on
// discard or process restart. Replaces per-row component state with one
// explicit map.
type PendingEdits struct {
	mu    sync.Mutex
	edits map[string]map[int]string
}

func NewPendingEdits() *PendingEdits {
	return &PendingEdits{edits: make(map[string]map[int]string)}
}

// Put stages a draft value, replacing any previous draft for the entity.
func (p *PendingEdits) Put(kind string, id int, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.edits[kind]
	if !ok {
		m = make(map[int]string)
		p.edits[kind] = m
	}
	m[id] = value
}

func (p *PendingEdits) Get(kind string, id int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.edits[kind][id]
	return value, ok
}

// Discard drops the draft and reports whether one existed.
func (p *PendingEdits) Discard(kind string, id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.edits[kind][id]; !ok {
		return false
	}
	delete(p.edits[kind], id)
	return true
}
