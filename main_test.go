package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/driver"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/schedulers"
)

const sampleFile = "testdata/processos.txt"

func TestRunTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-quantum", "2", sampleFile}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	for _, want := range []string{
		"=== cpu-bound processes (type 1) ===",
		"=== io-bound processes (type 2) ===",
		"=== mixed processes (type 3) ===",
		schedulers.AlgFCFS.Title(),
		schedulers.AlgSJF.Title(),
		schedulers.AlgSRTF.Title() + ", quantum 2",
		schedulers.AlgPrioC.Title(),
		schedulers.AlgRR.Title() + ", quantum 2",
		schedulers.AlgPrioP.Title(),
		"Average waiting time: 1.50",
		"Average turnaround time: 5.50",
		"Scheduling finished!",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Enter the quantum")
}

func TestRunPromptsForFileAndQuantum(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(nil, strings.NewReader(sampleFile+"\n3\n"), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Equal(t, 1, strings.Count(out, "Enter the name of the process file"))
	assert.Equal(t, 1, strings.Count(out, "Enter the quantum"))
	assert.Contains(t, out, "quantum 3")
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-format", "json", "-quantum", "2", sampleFile}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var report driver.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	require.Len(t, report.Groups, 3)
	assert.EqualValues(t, 2, report.Quantum)
	assert.Equal(t, []string{"1", "2"}, report.Groups[0].Results[0].Trace)
}

func TestRunCPUBoundNeedsNoQuantum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.txt")
	require.NoError(t, os.WriteFile(path, []byte("A 0 5 0 1\nB 2 3 0 1\n"), 0o600))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{path}, strings.NewReader(""), &stdout, &stderr))
	assert.NotContains(t, stdout.String(), "Enter the quantum")
}

func TestRunTrace(t *testing.T) {
	spans := filepath.Join(t.TempDir(), "spans.txt")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-quantum", "2", "-trace", "-trace-output", spans, sampleFile}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	data, err := os.ReadFile(spans)
	require.NoError(t, err)
	assert.Contains(t, string(data), "schedule.fcfs")
	assert.Contains(t, string(data), "simulation")
}

func TestRunErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("garbage line\nP1 0 2 0 9\n"), 0o600))

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  error
	}{
		{name: "no valid processes", args: []string{empty}, want: driver.ErrNoProcesses},
		{name: "too many files", args: []string{sampleFile, sampleFile}, want: ErrInvalidArgs},
		{name: "no file given", args: nil, stdin: "", want: ErrInvalidArgs},
		{name: "unknown flag", args: []string{"-bogus"}, want: ErrInvalidArgs},
		{name: "negative quantum", args: []string{"-quantum", "-1", sampleFile}, want: ErrInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"-format", "xml", sampleFile}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)

	err = run([]string{"missing.txt"}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)
}
