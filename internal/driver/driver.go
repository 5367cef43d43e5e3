// Package driver groups processes by type and runs the two scheduling
// policies that apply to each group:
//
//	CPU-bound  FCFS and SJF
//	I/O-bound  SRTF and cooperative priority
//	mixed      round robin and preemptive priority
//
// The quantum is requested at most once per run, and only when a group that
// needs it is present.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/idgen"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/logger"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/schedulers"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/tracing"
)

var ErrNoProcesses = errors.New("no process of a recognized type")

// Plan binds a process type to the policies applied to it.
type Plan struct {
	Type       process.Type
	Algorithms []schedulers.Algorithm
}

// Plans lists the groups in presentation order.
var Plans = []Plan{
	{Type: process.CPUBound, Algorithms: []schedulers.Algorithm{schedulers.AlgFCFS, schedulers.AlgSJF}},
	{Type: process.IOBound, Algorithms: []schedulers.Algorithm{schedulers.AlgSRTF, schedulers.AlgPrioC}},
	{Type: process.Mixed, Algorithms: []schedulers.Algorithm{schedulers.AlgRR, schedulers.AlgPrioP}},
}

func (p Plan) needsQuantum() bool {
	for _, alg := range p.Algorithms {
		if alg.NeedsQuantum() {
			return true
		}
	}
	return false
}

type (
	// GroupReport holds the results of one process type.
	GroupReport struct {
		Type      process.Type         `json:"type" yaml:"type"`
		Name      string               `json:"name" yaml:"name"`
		Count     int                  `json:"count" yaml:"count"`
		Processes []process.Descriptor `json:"processes" yaml:"processes"`
		Results   []schedulers.Result  `json:"results" yaml:"results"`
	}

	// Report is the outcome of a grouped simulation run.
	Report struct {
		RunID   string        `json:"run_id" yaml:"run_id"`
		Quantum int64         `json:"quantum,omitempty" yaml:"quantum,omitempty"`
		Groups  []GroupReport `json:"groups" yaml:"groups"`
	}
)

// Group partitions processes by type, keeping input order. Processes of an
// unrecognized type are dropped.
func Group(processes []process.Descriptor) map[process.Type][]process.Descriptor {
	groups := make(map[process.Type][]process.Descriptor, len(Plans))
	for _, p := range processes {
		if !p.Type.Valid() {
			continue
		}
		groups[p.Type] = append(groups[p.Type], p)
	}
	return groups
}

// Driver runs grouped simulations.
type Driver struct {
	logger  *slog.Logger
	quantum QuantumSource
}

func New(logger *slog.Logger, quantum QuantumSource) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{logger: logger, quantum: quantum}
}

// Run simulates every group present in processes.
func (d *Driver) Run(ctx context.Context, processes []process.Descriptor) (Report, error) {
	groups := Group(processes)
	if len(groups) == 0 {
		return Report{}, ErrNoProcesses
	}

	report := Report{RunID: idgen.New()}
	ctx, span := tracing.StartSpan(ctx, "simulation",
		attribute.String("run_id", report.RunID),
		attribute.Int("processes", len(processes)),
	)

	var err error
	report.Groups, report.Quantum, err = d.runGroups(ctx, groups)
	tracing.EndSpan(span, err)
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func (d *Driver) runGroups(ctx context.Context, groups map[process.Type][]process.Descriptor) ([]GroupReport, int64, error) {
	var (
		quantum int64
		reports []GroupReport
	)
	for _, plan := range Plans {
		group := groups[plan.Type]
		if len(group) == 0 {
			continue
		}

		if plan.needsQuantum() && quantum == 0 {
			q, err := d.obtainQuantum(ctx)
			if err != nil {
				return nil, 0, err
			}
			quantum = q
		}

		gr := GroupReport{Type: plan.Type, Name: plan.Type.String(), Count: len(group), Processes: group}
		for _, alg := range plan.Algorithms {
			res, err := d.runAlgorithm(ctx, alg, group, quantum)
			if err != nil {
				return nil, 0, fmt.Errorf("%s on %s group: %w", alg, plan.Type, err)
			}
			gr.Results = append(gr.Results, res)
		}
		reports = append(reports, gr)
	}
	return reports, quantum, nil
}

func (d *Driver) obtainQuantum(ctx context.Context) (int64, error) {
	if d.quantum == nil {
		return 0, ErrQuantumRequired
	}
	q, err := d.quantum(ctx)
	if err != nil {
		return 0, err
	}
	if q < 1 {
		return 0, fmt.Errorf("%w: got %d", schedulers.ErrInvalidQuantum, q)
	}
	return q, nil
}

func (d *Driver) runAlgorithm(ctx context.Context, alg schedulers.Algorithm, group []process.Descriptor, quantum int64) (schedulers.Result, error) {
	_, span := tracing.StartSpan(ctx, "schedule."+string(alg),
		attribute.String("algorithm", string(alg)),
		attribute.Int("processes", len(group)),
		attribute.Int64("quantum", quantum),
	)
	started := time.Now()
	res, err := schedulers.Run(alg, group, quantum)
	tracing.EndSpan(span, err)
	if err != nil {
		d.logger.Error("scheduling failed", slog.String("algorithm", string(alg)), logger.ErrAttr(err))
		return res, err
	}

	d.logger.Debug("scheduled",
		slog.String("algorithm", string(alg)),
		slog.Int("processes", len(group)),
		slog.Int("trace", len(res.Trace)),
		slog.Float64("average_waiting_time", res.Metrics.Waiting),
		slog.Float64("average_turnaround_time", res.Metrics.Turnaround),
		slog.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}
