package schedulers

import "github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"

// FCFS runs first-come, first-served: processes execute to completion in
// arrival order, ties kept in input order. The clock idles forward when the
// next process has not arrived yet.
func FCFS(processes []process.Descriptor) (Result, error) {
	r, err := begin(AlgFCFS, processes, 0)
	if err != nil {
		return Result{Algorithm: AlgFCFS}, err
	}

	for i := range r.procs {
		r.execute(i, r.procs[i].Duration)
		r.emit(i, 1)
		r.complete(i)
	}

	return r.finish()
}
