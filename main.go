// Command escalonador simulates CPU scheduling policies over a process file.
//
//	escalonador [flags] [process-file]
//	escalonador serve [flags]
//
// Each line of the process file holds "PID arrival duration priority type".
// CPU-bound processes (type 1) run under FCFS and SJF, I/O-bound ones (type 2)
// under SRTF and cooperative priority, and mixed ones (type 3) under round
// robin and preemptive priority.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/api"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/config"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/driver"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/loader"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/logger"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/report"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/tracing"
)

const version = "1.0.0"

var ErrInvalidArgs = errors.New("invalid args")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, driver.ErrNoProcesses) {
			_, _ = fmt.Fprintln(os.Stderr, "No process found in the file or invalid types!")
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	quantum     int64
	format      string
	logLevel    string
	trace       bool
	traceOutput string
	port        int
}

func parseFlags(name string, args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.Int64Var(&opts.quantum, "quantum", 0, "time quantum for SRTF and round robin (prompted when omitted)")
	fs.StringVar(&opts.format, "format", "", "output format: table, json or yaml")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.trace, "trace", false, "export OpenTelemetry spans")
	fs.StringVar(&opts.traceOutput, "trace-output", "", "file receiving spans (stderr when empty)")
	fs.IntVar(&opts.port, "port", 0, "HTTP port for serve")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return opts, fs.Args(), nil
}

// merge applies command line overrides on top of cfg.
func (o *options) merge(cfg *config.SchedulerConfig) {
	if o.quantum != 0 {
		cfg.Quantum = o.quantum
	}
	if o.format != "" {
		cfg.Format = o.format
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.trace {
		cfg.Tracing.Enabled = true
	}
	if o.traceOutput != "" {
		cfg.Tracing.Output = o.traceOutput
	}
	if o.port != 0 {
		cfg.Port = o.port
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	name := "escalonador"
	serve := len(args) > 0 && args[0] == "serve"
	if serve {
		name, args = "serve", args[1:]
	}

	opts, rest, err := parseFlags(name, args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.merge(cfg)
	if cfg.Quantum < 0 {
		return fmt.Errorf("%w: quantum must not be negative", ErrInvalidArgs)
	}

	log := logger.Build(stderr, cfg.LogLevel)
	slog.SetDefault(log)

	shutdown, err := setupTracing(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("flushing spans", logger.ErrAttr(err))
		}
	}()

	if serve {
		return runServer(cfg, log)
	}
	return simulate(cfg, log, rest, stdin, stdout)
}

func setupTracing(cfg *config.SchedulerConfig, stderr io.Writer) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Tracing.Enabled {
		return noop, nil
	}

	var w io.Writer = stderr
	var file *os.File
	if cfg.Tracing.Output != "" {
		f, err := os.Create(cfg.Tracing.Output)
		if err != nil {
			return nil, fmt.Errorf("%w: creating trace output", err)
		}
		w, file = f, f
	}

	shutdown, err := tracing.Init("escalonador", version, w)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if file != nil {
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
		}
		return err
	}, nil
}

func runServer(cfg *config.SchedulerConfig, log *slog.Logger) error {
	app := api.NewApp(api.NewSchedulerHandlerImpl(cfg, log))
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("listening", slog.String("addr", addr))
	return app.Listen(addr)
}

func simulate(cfg *config.SchedulerConfig, log *slog.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: expected a single process file", ErrInvalidArgs)
	}

	var prompt io.Writer = stdout
	if format != report.FormatTable {
		prompt = io.Discard
	}

	input := bufio.NewReader(stdin)
	path, err := processFile(args, input, prompt)
	if err != nil {
		return err
	}

	processes, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	log.Debug("processes loaded", slog.String("file", path), slog.Int("count", len(processes)))

	quantum := driver.FirstOf(driver.Fixed(cfg.Quantum), driver.Prompt(input, prompt))

	result, err := driver.New(log, quantum).Run(context.Background(), processes)
	if err != nil {
		return err
	}
	if err := report.Render(stdout, result, format); err != nil {
		return err
	}
	if format == report.FormatTable {
		_, _ = fmt.Fprintln(stdout, "\nScheduling finished!")
	}
	return nil
}

// processFile returns the file named on the command line, or asks for one.
func processFile(args []string, input *bufio.Reader, prompt io.Writer) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	_, _ = fmt.Fprint(prompt, "Enter the name of the process file: ")
	line, err := input.ReadString('\n')
	path := strings.TrimSpace(line)
	if path == "" {
		if err == nil {
			err = io.EOF
		}
		return "", fmt.Errorf("%w: must give a process file: %v", ErrInvalidArgs, err)
	}
	return path, nil
}
