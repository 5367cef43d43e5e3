// Package loader reads process descriptors from the textual process file.
//
// Each line holds five blank-separated fields:
//
//	PID arrival duration priority type
//
// where type is 1 (CPU-bound), 2 (I/O-bound) or 3 (both). Lines that do not
// describe a valid process are skipped. A file whose processes clash on an
// ID or would run past MaxHorizon is rejected as a whole.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
)

const fieldCount = 5

// MaxHorizon bounds the simulated clock: the latest arrival plus the total
// CPU time of a process set must not exceed it. Per-unit policies emit one
// trace entry per time unit, so the bound also caps the work of a run.
const MaxHorizon int64 = 1_000_000

var (
	ErrInvalidProcess = errors.New("invalid process descriptor")
	ErrDuplicateID    = fmt.Errorf("%w: duplicate id", ErrInvalidProcess)
	ErrHorizon        = fmt.Errorf("%w: process set exceeds the simulation horizon", ErrInvalidProcess)
)

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]process.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening process file", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Load(f)
}

// Load parses every valid process line of r in input order.
func Load(r io.Reader) ([]process.Descriptor, error) {
	var processes []process.Descriptor

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p, err := ParseLine(line)
		if err != nil {
			slog.Debug("skipping process line", slog.Int("line", lineNo), slog.Any("error", err))
			continue
		}
		processes = append(processes, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading process file", err)
	}
	if err := ValidateSet(processes); err != nil {
		return nil, err
	}

	return processes, nil
}

// ParseLine parses a single process line.
func ParseLine(line string) (process.Descriptor, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return process.Descriptor{}, fmt.Errorf("%w: want %d fields, got %d", ErrInvalidProcess, fieldCount, len(fields))
	}

	var values [fieldCount - 1]int64
	for i, field := range fields[1:] {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return process.Descriptor{}, fmt.Errorf("%w: field %d: %v", ErrInvalidProcess, i+2, err)
		}
		values[i] = v
	}

	p := process.Descriptor{
		ID:       fields[0],
		Arrival:  values[0],
		Duration: values[1],
		Priority: values[2],
		Type:     process.Type(values[3]),
	}
	if err := Validate(p); err != nil {
		return process.Descriptor{}, err
	}
	return p, nil
}

// Validate checks the ranges the scheduling engine relies on and that the
// type is one the grouping step recognizes.
func Validate(p process.Descriptor) error {
	if err := CheckRanges(p); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %d", ErrInvalidProcess, int(p.Type))
	}
	return nil
}

// CheckRanges checks id, arrival, duration and priority.
func CheckRanges(p process.Descriptor) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidProcess)
	case p.Arrival < 0:
		return fmt.Errorf("%w: negative arrival %d", ErrInvalidProcess, p.Arrival)
	case p.Duration < 1:
		return fmt.Errorf("%w: duration %d is not positive", ErrInvalidProcess, p.Duration)
	case p.Priority < 0:
		return fmt.Errorf("%w: negative priority %d", ErrInvalidProcess, p.Priority)
	case p.Arrival > MaxHorizon:
		return fmt.Errorf("%w: arrival %d exceeds %d", ErrInvalidProcess, p.Arrival, MaxHorizon)
	case p.Duration > MaxHorizon:
		return fmt.Errorf("%w: duration %d exceeds %d", ErrInvalidProcess, p.Duration, MaxHorizon)
	}
	return nil
}

// ValidateSet checks what only holds across a whole process set: IDs are
// unique and the latest arrival plus the total duration stays within
// MaxHorizon.
func ValidateSet(processes []process.Descriptor) error {
	seen := make(map[string]struct{}, len(processes))
	var latest, total int64
	for _, p := range processes {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Arrival > MaxHorizon || p.Duration > MaxHorizon {
			return fmt.Errorf("%w: %d", ErrHorizon, MaxHorizon)
		}
		latest = max(latest, p.Arrival)
		total += p.Duration
		if latest+total > MaxHorizon {
			return fmt.Errorf("%w: %d", ErrHorizon, MaxHorizon)
		}
	}
	return nil
}
