package jobs_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cdbl-lms/internal/jobs"
	jobserrors "cdbl-lms/internal/jobs/errors"
	jobsmock "cdbl-lms/internal/jobs/mock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newJobContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestJobsHandler_RunAccrual(t *testing.T) {
	t.Run("as_of from body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := jobsmock.NewMockRunner(ctrl)
		runner.EXPECT().RunMonthlyAccrual(gomock.Any(), date(2025, 3, 31)).
			Return(jobs.RunResult{Job: jobs.JobMonthlyAccrual, Period: "2025-03", Counts: jobs.Counts{Processed: 3, Applied: 3}}, nil)

		h := jobs.NewHandler(runner)
		c, w := newJobContext(http.MethodPost, "/jobs/accrual", `{"as_of":"2025-03-31"}`)

		h.RunAccrual(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var res jobs.RunResult
		assert.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, 3, res.Counts.Applied)
	})

	t.Run("as_of from query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := jobsmock.NewMockRunner(ctrl)
		runner.EXPECT().RunAnnualLapse(gomock.Any(), date(2024, 12, 31)).Return(jobs.RunResult{}, nil)

		h := jobs.NewHandler(runner)
		c, w := newJobContext(http.MethodPost, "/jobs/lapse?as_of=2024-12-31", "")

		h.RunLapse(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		h := jobs.NewHandler(jobsmock.NewMockRunner(gomock.NewController(t)))
		c, w := newJobContext(http.MethodPost, "/jobs/accrual", `{"as_of":"31/03/2025"}`)

		h.RunAccrual(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("runner error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := jobsmock.NewMockRunner(ctrl)
		runner.EXPECT().RunMonthlyAccrual(gomock.Any(), gomock.Any()).Return(jobs.RunResult{}, errors.New("db down"))

		h := jobs.NewHandler(runner)
		c, w := newJobContext(http.MethodPost, "/jobs/accrual", `{"as_of":"2025-03-31"}`)

		h.RunAccrual(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestJobsHandler_RunNamed(t *testing.T) {
	h := jobs.NewHandler(jobsmock.NewMockRunner(gomock.NewController(t)))
	c, w := newJobContext(http.MethodPost, "/jobs/cron/bonus_run", "")
	c.Params = gin.Params{{Key: "job", Value: "bonus_run"}}

	h.RunNamed(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	asOf := date(2025, 12, 31)

	t.Run("dispatches lapse", func(t *testing.T) {
		runner := jobsmock.NewMockRunner(gomock.NewController(t))
		runner.EXPECT().RunAnnualLapse(ctx, asOf).Return(jobs.RunResult{Job: jobs.JobAnnualLapse, Period: "2025"}, nil)

		res, err := jobs.Run(ctx, runner, jobs.JobAnnualLapse, asOf)

		assert.NoError(t, err)
		assert.Equal(t, "2025", res.Period)
	})

	t.Run("unknown job", func(t *testing.T) {
		runner := jobsmock.NewMockRunner(gomock.NewController(t))

		_, err := jobs.Run(ctx, runner, "bonus_run", asOf)

		assert.ErrorIs(t, err, jobserrors.ErrUnknownJob)
	})
}
