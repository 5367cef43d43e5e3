// Package api exposes the scheduling engine over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/config"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/driver"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/loader"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/logger"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/process"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/schedulers"
)

type ScheduleRequest struct {
	Quantum   int64                `json:"quantum"`
	Processes []process.Descriptor `json:"processes"`
}

type AlgorithmInfo struct {
	Name         schedulers.Algorithm `json:"name"`
	Title        string               `json:"title"`
	NeedsQuantum bool                 `json:"needs_quantum"`
}

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Algorithms(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
	logger *slog.Logger
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, logger *slog.Logger) *SchedulerHandlerImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerHandlerImpl{config: config, logger: logger}
}

// NewApp builds the fiber application with every route registered.
func NewApp(handler SchedulerHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health", handler.Health)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Get("/algorithms", handler.Algorithms)
		v1.Post("/schedule/:algorithm", handler.Schedule)
		v1.Post("/all", handler.AllAlgorithms)
	}
	return app
}

func badRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func (s *SchedulerHandlerImpl) parseRequest(ctx *fiber.Ctx, requireType bool) (*ScheduleRequest, error) {
	request := &ScheduleRequest{}
	if err := ctx.BodyParser(request); err != nil {
		return nil, fmt.Errorf("invalid request format: %v", err)
	}
	for i, p := range request.Processes {
		check := loader.CheckRanges
		if requireType {
			check = loader.Validate
		}
		if err := check(p); err != nil {
			return nil, fmt.Errorf("process %d: %w", i, err)
		}
	}
	if err := loader.ValidateSet(request.Processes); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *SchedulerHandlerImpl) quantum(request *ScheduleRequest) int64 {
	if request.Quantum != 0 {
		return request.Quantum
	}
	if s.config != nil {
		return s.config.Quantum
	}
	return 0
}

// Schedule runs a single algorithm over the request's processes.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	alg, err := schedulers.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	request, err := s.parseRequest(ctx, false)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := schedulers.Run(alg, request.Processes, s.quantum(request))
	if err != nil {
		s.logger.Warn("can not process request", slog.String("algorithm", string(alg)), logger.ErrAttr(err))
		return badRequest(ctx, err)
	}
	return ctx.JSON(response)
}

// AllAlgorithms groups the request's processes by type and runs the two
// policies of each group.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, err := s.parseRequest(ctx, true)
	if err != nil {
		return badRequest(ctx, err)
	}

	d := driver.New(s.logger, driver.Fixed(s.quantum(request)))
	report, err := d.Run(ctx.UserContext(), request.Processes)
	if err != nil {
		if errors.Is(err, driver.ErrNoProcesses) || errors.Is(err, schedulers.ErrInvalidQuantum) {
			return badRequest(ctx, err)
		}
		s.logger.Error("can not process request", logger.ErrAttr(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
	}
	return ctx.JSON(report)
}

func (s *SchedulerHandlerImpl) Algorithms(ctx *fiber.Ctx) error {
	infos := make([]AlgorithmInfo, 0, len(schedulers.Algorithms))
	for _, alg := range schedulers.Algorithms {
		infos = append(infos, AlgorithmInfo{Name: alg, Title: alg.Title(), NeedsQuantum: alg.NeedsQuantum()})
	}
	return ctx.JSON(infos)
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
