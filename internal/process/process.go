// Package process holds the process descriptor model shared by the loader,
// the scheduling engine and the driver.
package process

import "fmt"

// Type classifies a process for the grouping step. The numeric values are the
// codes used in the process file.
type Type int

const (
	CPUBound Type = 1
	IOBound  Type = 2
	Mixed    Type = 3
)

// Valid reports whether t is one of the recognized process types.
func (t Type) Valid() bool {
	return t == CPUBound || t == IOBound || t == Mixed
}

func (t Type) String() string {
	switch t {
	case CPUBound:
		return "cpu-bound"
	case IOBound:
		return "io-bound"
	case Mixed:
		return "mixed"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// NoPriority is the priority sentinel for processes without an assigned
// priority. It ranks below every positive priority.
const NoPriority int64 = 0

type (
	// Descriptor is an immutable process record. Simulation state is kept by
	// the engine in its own per-run structures.
	Descriptor struct {
		ID       string `json:"id" yaml:"id"`
		Arrival  int64  `json:"arrival" yaml:"arrival"`
		Duration int64  `json:"duration" yaml:"duration"`
		Priority int64  `json:"priority" yaml:"priority"`
		Type     Type   `json:"type" yaml:"type"`
	}

	// Completion is emitted once per process when its remaining time reaches zero.
	Completion struct {
		ID         string `json:"id" yaml:"id"`
		Arrival    int64  `json:"arrival" yaml:"arrival"`
		Completion int64  `json:"completion" yaml:"completion"`
		Duration   int64  `json:"duration" yaml:"duration"`
	}
)

// HasPriority reports whether d carries a priority other than the sentinel.
func (d Descriptor) HasPriority() bool {
	return d.Priority > NoPriority
}

// Turnaround is completion minus arrival.
func (c Completion) Turnaround() int64 {
	return c.Completion - c.Arrival
}

// Waiting is the time spent ready but not executing.
func (c Completion) Waiting() int64 {
	return c.Turnaround() - c.Duration
}
