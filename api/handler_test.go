package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/config"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/driver"
	"github.com/AJuliapc/SO-Escalonamento-de-tarefas/internal/schedulers"
)

func newTestApp(quantum int64) *fiber.App {
	return NewApp(NewSchedulerHandlerImpl(&config.SchedulerConfig{Quantum: quantum}, nil))
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestSchedule(t *testing.T) {
	app := newTestApp(0)
	status, body := do(t, app, http.MethodPost, "/api/v1/schedule/rr",
		`{"quantum":2,"processes":[{"id":"A","arrival":0,"duration":5},{"id":"B","arrival":1,"duration":3}]}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var res schedulers.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, schedulers.AlgRR, res.Algorithm)
	assert.Equal(t, []string{"A", "B", "A", "B", "A"}, res.Trace)
	assert.InDelta(t, 3, res.Metrics.Waiting, 1e-9)
	assert.InDelta(t, 7, res.Metrics.Turnaround, 1e-9)
}

func TestScheduleUsesConfiguredQuantum(t *testing.T) {
	app := newTestApp(3)
	status, body := do(t, app, http.MethodPost, "/api/v1/schedule/SRTF",
		`{"processes":[{"id":"A","arrival":0,"duration":5},{"id":"B","arrival":1,"duration":1}]}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var res schedulers.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, []string{"A", "A", "A", "B", "A", "A"}, res.Trace)
}

func TestScheduleErrors(t *testing.T) {
	app := newTestApp(0)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "unknown algorithm", path: "/api/v1/schedule/mlfq", body: `{}`, status: http.StatusNotFound},
		{name: "bad json", path: "/api/v1/schedule/fcfs", body: `{"processes":`, status: http.StatusBadRequest},
		{name: "no processes", path: "/api/v1/schedule/fcfs", body: `{"processes":[]}`, status: http.StatusBadRequest},
		{name: "missing quantum", path: "/api/v1/schedule/rr", body: `{"processes":[{"id":"A","duration":1}]}`, status: http.StatusBadRequest},
		{name: "zero duration", path: "/api/v1/schedule/sjf", body: `{"processes":[{"id":"A","duration":0}]}`, status: http.StatusBadRequest},
		{name: "arrival near int64 limit", path: "/api/v1/schedule/fcfs", body: `{"processes":[{"id":"A","arrival":9223372036854775806,"duration":5}]}`, status: http.StatusBadRequest},
		{name: "duration past the horizon", path: "/api/v1/schedule/priop", body: `{"processes":[{"id":"A","duration":1000000000000000}]}`, status: http.StatusBadRequest},
		{name: "set past the horizon", path: "/api/v1/schedule/srtf", body: `{"quantum":2,"processes":[{"id":"A","arrival":999999,"duration":1},{"id":"B","duration":1}]}`, status: http.StatusBadRequest},
		{name: "duplicate id", path: "/api/v1/schedule/fcfs", body: `{"processes":[{"id":"A","duration":1},{"id":"A","duration":2}]}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(body))
			assert.Contains(t, string(body), "error")
		})
	}
}

func TestAllAlgorithms(t *testing.T) {
	app := newTestApp(0)
	status, body := do(t, app, http.MethodPost, "/api/v1/all", `{"quantum":2,"processes":[
		{"id":"P1","arrival":0,"duration":5,"priority":0,"type":1},
		{"id":"P2","arrival":0,"duration":2,"priority":1,"type":2},
		{"id":"P3","arrival":0,"duration":4,"priority":2,"type":3}
	]}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var report driver.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.NotEmpty(t, report.RunID)
	assert.EqualValues(t, 2, report.Quantum)
	require.Len(t, report.Groups, 3)
	for _, group := range report.Groups {
		assert.Len(t, group.Results, 2)
	}

	status, _ = do(t, app, http.MethodPost, "/api/v1/all", `{"processes":[{"id":"P3","arrival":0,"duration":4,"type":3}]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/all", `{"processes":[{"id":"P3","arrival":0,"duration":4,"type":8}]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPost, "/api/v1/all", `{"quantum":2,"processes":[
		{"id":"P1","arrival":0,"duration":5,"type":1},
		{"id":"P1","arrival":1,"duration":2,"type":3}
	]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "duplicate id")
}

func TestAlgorithmsAndHealth(t *testing.T) {
	app := newTestApp(0)
	status, body := do(t, app, http.MethodGet, "/api/v1/algorithms", "")
	require.Equal(t, http.StatusOK, status)

	var infos []AlgorithmInfo
	require.NoError(t, json.Unmarshal(body, &infos))
	require.Len(t, infos, len(schedulers.Algorithms))
	assert.Equal(t, schedulers.AlgFCFS, infos[0].Name)
	assert.False(t, infos[0].NeedsQuantum)
	assert.True(t, infos[3].NeedsQuantum)

	status, body = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
