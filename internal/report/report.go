// Package report renders simulation results.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/driver"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/schedulers"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a report is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Render writes r to w in the given format.
func Render(w io.Writer, r driver.Report, format Format) error {
	switch format {
	case FormatTable, "":
		Table(w, r)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Table writes every group of r as execution order, Gantt chart and schedule
// table.
func Table(w io.Writer, r driver.Report) {
	for _, group := range r.Groups {
		_, _ = fmt.Fprintf(w, "\n=== %s processes (type %d) ===\n", group.Name, int(group.Type))
		_, _ = fmt.Fprintf(w, "Processes: %d\n", group.Count)
		for _, res := range group.Results {
			Result(w, res, group.Processes)
		}
	}
}

// Result writes a single algorithm result. processes is used to fill in the
// priority column and may be nil.
func Result(w io.Writer, res schedulers.Result, processes []process.Descriptor) {
	title := res.Algorithm.Title()
	if res.Quantum > 0 {
		title = fmt.Sprintf("%s, quantum %d", title, res.Quantum)
	}
	outputTitle(w, title)
	outputOrder(w, res.Trace)
	outputGantt(w, res.Slices)
	outputSchedule(w, scheduleRows(res, processes), res.Metrics)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func outputOrder(w io.Writer, trace []string) {
	_, _ = fmt.Fprintln(w, "Execution order (PID):")
	_, _ = fmt.Fprintln(w, strings.Join(trace, " "))
	_, _ = fmt.Fprintln(w)
}

func outputGantt(w io.Writer, gantt []schedulers.Slice) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for i := range gantt {
		pid := gantt[i].PID
		padding := strings.Repeat(" ", max(8-len(pid), 0)/2)
		_, _ = fmt.Fprint(w, padding, pid, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i := range gantt {
		_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].Start), "\t")
		if len(gantt)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].Stop))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func scheduleRows(res schedulers.Result, processes []process.Descriptor) [][]string {
	priorities := make(map[string]int64, len(processes))
	for _, p := range processes {
		priorities[p.ID] = p.Priority
	}

	rows := make([][]string, 0, len(res.Completions))
	for _, c := range res.Completions {
		priority := "-"
		if p, ok := priorities[c.ID]; ok {
			priority = fmt.Sprint(p)
		}
		rows = append(rows, []string{
			c.ID,
			priority,
			fmt.Sprint(c.Duration),
			fmt.Sprint(c.Arrival),
			fmt.Sprint(c.Waiting()),
			fmt.Sprint(c.Turnaround()),
			fmt.Sprint(c.Completion),
		})
	}
	return rows
}

func outputSchedule(w io.Writer, rows [][]string, metrics schedulers.Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", metrics.Waiting),
		fmt.Sprintf("Average\n%.2f", metrics.Turnaround),
		""})
	table.Render()
	_, _ = fmt.Fprintf(w, "Average waiting time: %.2f\n", metrics.Waiting)
	_, _ = fmt.Fprintf(w, "Average turnaround time: %.2f\n", metrics.Turnaround)
}
