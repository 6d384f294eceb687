package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/liftlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

func doJSONRequest(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Origin", "test")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, respBytes
}

func TestWorkoutsAPI(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite := newSuite(ctx)
	defer suite.cleanup()

	today := workouts.Today()
	yesterday := workouts.DayKey(time.Now().UTC().AddDate(0, 0, -1))

	t.Run("save workout", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "POST", "/workouts", workouts.AddWorkoutRequest{
			Date: today,
			Exercises: []workouts.Exercise{
				{
					Name: "Bench Press",
					Sets: []workouts.Set{
						workouts.NewSet(100, 5),
						{}, // empty set, excluded from all derivations
					},
				},
				{
					Name: "Squat",
					Sets: []workouts.Set{workouts.NewSet(140, 3)},
				},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(respBytes))

		var added workouts.AddWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &added))
		assert.Positive(t, added.WorkoutID)
	})

	t.Run("save rest day", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "POST", "/workouts/rest", workouts.AddRestDayRequest{
			Date: yesterday,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(respBytes))

		// a second rest day for the same date is rejected
		resp, _ = doJSONRequest(t, "POST", "/workouts/rest", workouts.AddRestDayRequest{
			Date: yesterday,
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("list range", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET",
			fmt.Sprintf("/workouts/range?start=%s&end=%s", yesterday, today), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var listResp workouts.ListRangeResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		require.Len(t, listResp.Workouts, 2)

		assert.Equal(t, yesterday, listResp.Workouts[0].Date)
		assert.True(t, listResp.Workouts[0].RestDay)

		saved := listResp.Workouts[1]
		assert.Equal(t, today, saved.Date)
		require.Len(t, saved.Exercises, 2)
		assert.Equal(t, "Bench Press", saved.Exercises[0].Name)
		require.Len(t, saved.Exercises[0].Sets, 2)
		assert.Nil(t, saved.Exercises[0].Sets[1].Weight)
		assert.Nil(t, saved.Exercises[0].Sets[1].Reps)
		assert.Equal(t, 920, workouts.Volume(saved))
	})

	t.Run("list for date", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET", "/workouts?date="+today, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var listResp workouts.ListForDateResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		assert.Equal(t, today, listResp.Date)
		require.Len(t, listResp.Workouts, 1)
	})

	t.Run("insights summary", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET", "/workouts/insights/summary?date="+today, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var summary workouts.InsightsSummaryResponse
		require.NoError(t, json.Unmarshal(respBytes, &summary))
		assert.Equal(t, today, summary.Date)
		assert.Equal(t, 2, summary.Streak)
		assert.Equal(t, "Today: 2 sets, 8 reps. Best moment: Squat @ 140.", summary.TodayCoach)
		assert.Len(t, summary.Highlights, 3)
		assert.NotEmpty(t, summary.Encouragement)
	})

	t.Run("daily stats", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET", "/workouts/stats/daily?days=2&date="+today, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var stats workouts.DailyStats
		require.NoError(t, json.Unmarshal(respBytes, &stats))
		require.Len(t, stats.Points, 2)
		assert.Equal(t, workouts.Point{X: yesterday, Y: 0}, stats.Points[0])
		assert.Equal(t, workouts.Point{X: today, Y: 920}, stats.Points[1])
	})

	t.Run("all time stats with exercise focus", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET", "/workouts/stats/alltime?exercise=Squat", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var stats workouts.AllTimeStats
		require.NoError(t, json.Unmarshal(respBytes, &stats))
		assert.Equal(t, 920, stats.Totals.TotalVolume)
		assert.Equal(t, 1, stats.Totals.DaysLifted)
		assert.Equal(t, []string{"Bench Press", "Squat"}, stats.Exercises)
		require.NotNil(t, stats.PR)
		assert.Equal(t, 140, stats.PR.Value)
		require.NotNil(t, stats.Best1RM)
		assert.Equal(t, 154, stats.Best1RM.Value)
	})

	t.Run("draft coach", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "POST", "/workouts/coach/draft", workouts.DraftCoachRequest{
			Date: today,
			DraftCoachInput: workouts.DraftCoachInput{
				Log: []workouts.DraftExercise{
					{Name: "Squat", Sets: []workouts.DraftSet{{Weight: "135", Reps: "5"}}},
				},
			},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(respBytes))

		var coachResp workouts.DraftCoachResponse
		require.NoError(t, json.Unmarshal(respBytes, &coachResp))
		// 135 vs the 140 baseline saved above
		assert.Equal(t,
			"Relative heavy day on Squat. Brace hard. Knees track. Controlled depth.",
			coachResp.CoachLine)
	})

	t.Run("health", func(t *testing.T) {
		resp, respBytes := doJSONRequest(t, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(respBytes), "ok")
	})
}
