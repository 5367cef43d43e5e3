package schedulers

import (
	"container/heap"
	"sort"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
)

// run is the private working state of one algorithm invocation. procs is an
// arena of the caller's descriptors, stably sorted by arrival, so an index
// into it doubles as the admission sequence number. remaining is indexed in
// parallel with procs.
type run struct {
	alg       Algorithm
	procs     []process.Descriptor
	remaining []int64
	next      int
	clock     int64
	last      int
	result    Result
}

func newRun(alg Algorithm, processes []process.Descriptor) *run {
	procs := make([]process.Descriptor, len(processes))
	copy(procs, processes)
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].Arrival < procs[j].Arrival
	})

	remaining := make([]int64, len(procs))
	for i := range procs {
		remaining[i] = procs[i].Duration
	}

	return &run{
		alg:       alg,
		procs:     procs,
		remaining: remaining,
		last:      -1,
		result: Result{
			Algorithm:   alg,
			Trace:       make([]string, 0, len(procs)),
			Slices:      make([]Slice, 0, len(procs)),
			Completions: make([]process.Completion, 0, len(procs)),
		},
	}
}

func (r *run) hasPending() bool {
	return r.next < len(r.procs)
}

// admit hands every pending process that has arrived by the current clock to
// ready, in arrival order.
func (r *run) admit(ready func(i int)) {
	for r.next < len(r.procs) && r.procs[r.next].Arrival <= r.clock {
		ready(r.next)
		r.next++
	}
}

// idle fast-forwards the clock to the next pending arrival.
func (r *run) idle() {
	r.clock = r.procs[r.next].Arrival
}

// execute gives the CPU to process i for units time units.
func (r *run) execute(i int, units int64) {
	if r.clock < r.procs[i].Arrival {
		r.clock = r.procs[i].Arrival
	}
	start := r.clock
	r.clock += units
	r.remaining[i] -= units

	n := len(r.result.Slices)
	if r.last == i && n > 0 && r.result.Slices[n-1].Stop == start {
		r.result.Slices[n-1].Stop = r.clock
	} else {
		r.result.Slices = append(r.result.Slices, Slice{PID: r.procs[i].ID, Start: start, Stop: r.clock})
	}
	r.last = i
}

// emit appends count trace entries for process i.
func (r *run) emit(i int, count int64) {
	for ; count > 0; count-- {
		r.result.Trace = append(r.result.Trace, r.procs[i].ID)
	}
}

func (r *run) done(i int) bool {
	return r.remaining[i] == 0
}

// complete records process i as finished at the current clock.
func (r *run) complete(i int) {
	p := r.procs[i]
	r.result.Completions = append(r.result.Completions, process.Completion{
		ID:         p.ID,
		Arrival:    p.Arrival,
		Completion: r.clock,
		Duration:   p.Duration,
	})
}

func (r *run) finish() (Result, error) {
	metrics, err := ComputeMetrics(r.result.Completions)
	if err != nil {
		return r.result, err
	}
	r.result.Metrics = metrics
	return r.result, nil
}

// begin validates the common preconditions of every algorithm.
func begin(alg Algorithm, processes []process.Descriptor, quantum int64) (*run, error) {
	if len(processes) == 0 {
		return nil, ErrNoProcesses
	}
	if alg.NeedsQuantum() && quantum < 1 {
		return nil, ErrInvalidQuantum
	}
	r := newRun(alg, processes)
	if alg.NeedsQuantum() {
		r.result.Quantum = quantum
	}
	return r, nil
}

// indexHeap is a priority queue of arena indices ordered by less.
type indexHeap struct {
	items []int
	less  func(a, b int) bool
}

func newIndexHeap(capacity int, less func(a, b int) bool) *indexHeap {
	return &indexHeap{items: make([]int, 0, capacity), less: less}
}

func (h indexHeap) Len() int { return len(h.items) }

func (h indexHeap) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }

func (h indexHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *indexHeap) Push(x interface{}) {
	h.items = append(h.items, x.(int))
}

func (h *indexHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

func (h *indexHeap) add(i int) { heap.Push(h, i) }

func (h *indexHeap) peek() int { return h.items[0] }

func (h *indexHeap) take() int { return heap.Pop(h).(int) }

// fixTop restores the ordering after the key of the head element changed.
func (h *indexHeap) fixTop() { heap.Fix(h, 0) }

// fifo is a growable ring buffer of arena indices.
type fifo struct {
	nodes []int
	head  int
	tail  int
	count int
}

func newFIFO(size int) *fifo {
	if size < 1 {
		size = 1
	}
	return &fifo{nodes: make([]int, size)}
}

func (q *fifo) empty() bool {
	return q.count == 0
}

// pushBack adds an element to the end of the queue.
func (q *fifo) pushBack(i int) {
	if q.head == q.tail && q.count > 0 {
		nodes := make([]int, len(q.nodes)*2)
		copy(nodes, q.nodes[q.head:])
		copy(nodes[len(q.nodes)-q.head:], q.nodes[:q.head])
		q.head = 0
		q.tail = len(q.nodes)
		q.nodes = nodes
	}
	q.nodes[q.tail] = i
	q.tail = (q.tail + 1) % len(q.nodes)
	q.count++
}

// popFront removes the first element of the queue.
func (q *fifo) popFront() int {
	i := q.nodes[q.head]
	q.head = (q.head + 1) % len(q.nodes)
	q.count--
	return i
}
