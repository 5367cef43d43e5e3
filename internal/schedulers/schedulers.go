// Package schedulers implements the simulated scheduling engine: six
// scheduling policies over a static set of process descriptors and the
// metrics shared by all of them.
//
// Every algorithm works on its own copy of the input. The caller's slice is
// never reordered or mutated, so the same descriptors can be handed to any
// number of algorithms, sequentially or concurrently.
package schedulers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
)

var (
	ErrNoProcesses      = errors.New("no processes to schedule")
	ErrInvalidQuantum   = errors.New("quantum must be a positive integer")
	ErrUnknownAlgorithm = errors.New("unknown scheduling algorithm")
)

// Algorithm names a scheduling policy.
type Algorithm string

const (
	AlgFCFS  Algorithm = "fcfs"
	AlgSJF   Algorithm = "sjf"
	AlgSRTF  Algorithm = "srtf"
	AlgRR    Algorithm = "rr"
	AlgPrioC Algorithm = "prioc"
	AlgPrioP Algorithm = "priop"
)

// Algorithms lists every supported policy in presentation order.
var Algorithms = []Algorithm{
	AlgFCFS,
	AlgSJF,
	AlgSRTF,
	AlgRR,
	AlgPrioC,
	AlgPrioP,
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, candidate := range Algorithms {
		if candidate == alg {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// NeedsQuantum reports whether the policy slices execution by a quantum.
func (a Algorithm) NeedsQuantum() bool {
	return a == AlgSRTF || a == AlgRR
}

// Title is the human readable name of the policy.
func (a Algorithm) Title() string {
	switch a {
	case AlgFCFS:
		return "First-Come, First-Served (FCFS)"
	case AlgSJF:
		return "Shortest Job First (SJF)"
	case AlgSRTF:
		return "Shortest Remaining Time First (SRTF)"
	case AlgRR:
		return "Round Robin (RR)"
	case AlgPrioC:
		return "Priority, cooperative (PrioC)"
	case AlgPrioP:
		return "Priority, preemptive (PrioP)"
	}
	return string(a)
}

type (
	// Slice is a contiguous interval during which a process held the CPU.
	Slice struct {
		PID   string `json:"pid" yaml:"pid"`
		Start int64  `json:"start" yaml:"start"`
		Stop  int64  `json:"stop" yaml:"stop"`
	}

	// Result is the outcome of one algorithm invocation. Trace holds process
	// IDs at the algorithm's own granularity: one entry per process for FCFS,
	// SJF and cooperative priority, one per slice for round robin and one per
	// time unit for SRTF and preemptive priority.
	Result struct {
		Algorithm   Algorithm            `json:"algorithm" yaml:"algorithm"`
		Quantum     int64                `json:"quantum,omitempty" yaml:"quantum,omitempty"`
		Trace       []string             `json:"trace" yaml:"trace"`
		Slices      []Slice              `json:"slices" yaml:"slices"`
		Completions []process.Completion `json:"completions" yaml:"completions"`
		Metrics     Metrics              `json:"metrics" yaml:"metrics"`
	}
)

// Run dispatches to the named algorithm. quantum is ignored by policies that
// do not need one.
func Run(alg Algorithm, processes []process.Descriptor, quantum int64) (Result, error) {
	switch alg {
	case AlgFCFS:
		return FCFS(processes)
	case AlgSJF:
		return SJF(processes)
	case AlgSRTF:
		return SRTF(processes, quantum)
	case AlgRR:
		return RoundRobin(processes, quantum)
	case AlgPrioC:
		return PriorityCooperative(processes)
	case AlgPrioP:
		return PriorityPreemptive(processes)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
}
