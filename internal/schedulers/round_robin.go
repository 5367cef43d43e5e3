package schedulers

import "github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"

// RoundRobin runs round robin with the given quantum. Processes that arrive
// during a slice join the queue ahead of the process that was just
// preempted. The trace carries one entry per slice.
func RoundRobin(processes []process.Descriptor, quantum int64) (Result, error) {
	r, err := begin(AlgRR, processes, quantum)
	if err != nil {
		return Result{Algorithm: AlgRR}, err
	}

	queue := newFIFO(len(r.procs))
	for {
		r.admit(queue.pushBack)

		if queue.empty() {
			if !r.hasPending() {
				break
			}
			r.idle()
			continue
		}

		i := queue.popFront()
		units := min(r.remaining[i], quantum)
		r.execute(i, units)
		r.emit(i, 1)

		r.admit(queue.pushBack)

		if r.done(i) {
			r.complete(i)
		} else {
			queue.pushBack(i)
		}
	}

	return r.finish()
}
