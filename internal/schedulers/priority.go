package schedulers

import "github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"

// priorityQueue selects by priority: the highest priority among processes
// that have one, earliest arrival first on ties. Only when no ready process
// has a priority does the earliest arrival among the rest get the CPU, so a
// process without priority waits as long as any prioritized one is ready.
type priorityQueue struct {
	prioritized *indexHeap
	plain       *indexHeap
	procs       []process.Descriptor
}

func newPriorityQueue(procs []process.Descriptor) *priorityQueue {
	return &priorityQueue{
		procs: procs,
		prioritized: newIndexHeap(len(procs), func(a, b int) bool {
			if procs[a].Priority != procs[b].Priority {
				return procs[a].Priority > procs[b].Priority
			}
			return a < b
		}),
		plain: newIndexHeap(len(procs), func(a, b int) bool {
			return a < b
		}),
	}
}

func (q *priorityQueue) add(i int) {
	if q.procs[i].HasPriority() {
		q.prioritized.add(i)
		return
	}
	q.plain.add(i)
}

func (q *priorityQueue) Len() int {
	return q.prioritized.Len() + q.plain.Len()
}

func (q *priorityQueue) peek() int {
	if q.prioritized.Len() > 0 {
		return q.prioritized.peek()
	}
	return q.plain.peek()
}

func (q *priorityQueue) take() int {
	if q.prioritized.Len() > 0 {
		return q.prioritized.take()
	}
	return q.plain.take()
}

// PriorityCooperative runs non-preemptive priority scheduling; a larger
// value means a higher priority and 0 means no priority. With no priorities
// at all it orders exactly like FCFS.
func PriorityCooperative(processes []process.Descriptor) (Result, error) {
	r, err := begin(AlgPrioC, processes, 0)
	if err != nil {
		return Result{Algorithm: AlgPrioC}, err
	}

	ready := newPriorityQueue(r.procs)
	for r.hasPending() || ready.Len() > 0 {
		r.admit(ready.add)
		if ready.Len() == 0 {
			r.idle()
			continue
		}

		i := ready.take()
		r.execute(i, r.procs[i].Duration)
		r.emit(i, 1)
		r.complete(i)
	}

	return r.finish()
}

// PriorityPreemptive re-evaluates the priority rule every time unit, so a
// newly arrived process with a higher priority takes the CPU on the next
// unit. The trace carries one entry per time unit.
func PriorityPreemptive(processes []process.Descriptor) (Result, error) {
	r, err := begin(AlgPrioP, processes, 0)
	if err != nil {
		return Result{Algorithm: AlgPrioP}, err
	}

	ready := newPriorityQueue(r.procs)
	for r.hasPending() || ready.Len() > 0 {
		r.admit(ready.add)
		if ready.Len() == 0 {
			r.idle()
			continue
		}

		i := ready.peek()
		r.execute(i, 1)
		r.emit(i, 1)

		if r.done(i) {
			ready.take()
			r.complete(i)
		}
	}

	return r.finish()
}
