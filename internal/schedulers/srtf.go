package schedulers

import "github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"

// SRTF runs shortest-remaining-time-first sliced by quantum. Selection only
// happens at slice boundaries: the chosen process keeps the CPU for
// min(remaining, quantum) units even if a shorter process arrives meanwhile.
// The trace carries one entry per executed time unit.
func SRTF(processes []process.Descriptor, quantum int64) (Result, error) {
	r, err := begin(AlgSRTF, processes, quantum)
	if err != nil {
		return Result{Algorithm: AlgSRTF}, err
	}

	ready := newIndexHeap(len(r.procs), func(a, b int) bool {
		if r.remaining[a] != r.remaining[b] {
			return r.remaining[a] < r.remaining[b]
		}
		return a < b
	})

	for r.hasPending() || ready.Len() > 0 {
		r.admit(ready.add)
		if ready.Len() == 0 {
			r.idle()
			continue
		}

		i := ready.peek()
		units := min(r.remaining[i], quantum)
		r.execute(i, units)
		r.emit(i, units)

		if r.done(i) {
			ready.take()
			r.complete(i)
		} else {
			ready.fixTop()
		}
	}

	return r.finish()
}
