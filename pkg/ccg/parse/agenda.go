package parse

import "container/heap"

// agendaItem is a partial derivation plus its A* priority
// (inside + admissible outside). rooted marks a complete parse whose
// ROOT attachment score has been folded in; popping one emits it.
type agendaItem struct {
	tree     *Tree
	priority float64
	seq      uint64
	rooted   bool
}

// Agenda is a max-priority queue over partial derivations. Ties on
// priority break toward the lower insertion counter, which makes the
// pop order, and hence the whole search, deterministic.
type Agenda struct {
	items agendaHeap
	seq   uint64
}

// NewAgenda returns an empty agenda.
func NewAgenda() *Agenda { return &Agenda{} }

// Push inserts a derivation with its priority.
func (a *Agenda) Push(t *Tree, priority float64, rooted bool) {
	a.seq++
	heap.Push(&a.items, &agendaItem{tree: t, priority: priority, seq: a.seq, rooted: rooted})
}

// Pop removes and returns the best item.
func (a *Agenda) Pop() *agendaItem {
	return heap.Pop(&a.items).(*agendaItem)
}

// Empty reports whether the agenda has no items left.
func (a *Agenda) Empty() bool { return len(a.items) == 0 }

// Len returns the number of queued items.
func (a *Agenda) Len() int { return len(a.items) }

// agendaHeap implements heap.Interface as a max-heap on
// (priority, -seq).
type agendaHeap []*agendaItem

func (h agendaHeap) Len() int { return len(h) }

func (h agendaHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h agendaHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *agendaHeap) Push(x any) { *h = append(*h, x.(*agendaItem)) }

func (h *agendaHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
