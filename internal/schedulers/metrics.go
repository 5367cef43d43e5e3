package schedulers

import (
	"errors"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
)

var ErrNoCompletions = errors.New("metrics need at least one completed process")

// Metrics holds the mean waiting and turnaround times of a run.
type Metrics struct {
	Waiting    float64 `json:"average_waiting_time" yaml:"average_waiting_time"`
	Turnaround float64 `json:"average_turnaround_time" yaml:"average_turnaround_time"`
}

// ComputeMetrics averages turnaround (completion - arrival) and waiting
// (turnaround - duration) over the given records.
func ComputeMetrics(records []process.Completion) (Metrics, error) {
	if len(records) == 0 {
		return Metrics{}, ErrNoCompletions
	}

	var totalWait, totalTurnaround float64
	for _, r := range records {
		totalWait += float64(r.Waiting())
		totalTurnaround += float64(r.Turnaround())
	}

	count := float64(len(records))
	return Metrics{
		Waiting:    totalWait / count,
		Turnaround: totalTurnaround / count,
	}, nil
}
