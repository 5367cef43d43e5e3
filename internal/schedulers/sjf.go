package schedulers

import "github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"

// SJF runs non-preemptive shortest-job-first. At every decision point the
// ready process with the smallest duration runs to completion; equal
// durations go to the earliest arrival.
func SJF(processes []process.Descriptor) (Result, error) {
	r, err := begin(AlgSJF, processes, 0)
	if err != nil {
		return Result{Algorithm: AlgSJF}, err
	}

	// arena indices follow arrival order, so a lower index is an earlier arrival
	ready := newIndexHeap(len(r.procs), func(a, b int) bool {
		if r.procs[a].Duration != r.procs[b].Duration {
			return r.procs[a].Duration < r.procs[b].Duration
		}
		return a < b
	})

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
