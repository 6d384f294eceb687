package workouts

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// historyStart is the lower bound used when the analyzer needs the full
// history; no records exist before it.
const historyStart = "2000-01-01"

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	AddRestDay(ctx context.Context, date string) (*Workout, error)
	ListRange(ctx context.Context, start, end string) ([]Workout, error)
	ListForDate(ctx context.Context, date string) ([]Workout, error)
}

// Analyzer derives insights from stored workouts. All derivations are pure,
// the analyzer only adds repo access and tracing around them.
type Analyzer struct {
	repo workoutsRepo
}

func NewAnalyzer(repo workoutsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

type InsightsSummary struct {
	Date       string   `json:"date"`
	Mood       Mood     `json:"mood"`
	Streak     int      `json:"streak"`
	TodayCoach string   `json:"todayCoach"`
	Highlights []string `json:"highlights"`
}

// InsightsSummary builds the home-screen insights for the given day: mood
// label, streak, coaching line and the three weekly highlights.
func (a *Analyzer) InsightsSummary(ctx context.Context, today string) (_ *InsightsSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.insightsSummary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("today", today))

	all, err := a.repo.ListRange(ctx, historyStart, today)
	if err != nil {
		return nil, err
	}

	var todayRecords []Workout
	for _, w := range all {
		if w.Date == today {
			todayRecords = append(todayRecords, w)
		}
	}

	return &InsightsSummary{
		Date:       today,
		Mood:       ClassifyMood(all, today),
		Streak:     Streak(all, today),
		TodayCoach: TodayCoachText(todayRecords),
		Highlights: WeeklyHighlights(all, today),
	}, nil
}

type DailyStats struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Exercise string  `json:"exercise,omitempty"`
	Points   []Point `json:"points"`
}

// DailyStats builds the gap-free daily volume series for the trailing days
// ending at today, optionally restricted to one exercise.
func (a *Analyzer) DailyStats(ctx context.Context, today string, days int, exercise string) (_ *DailyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.dailyStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := addDays(today, -(days - 1))
	records, err := a.repo.ListRange(ctx, start, today)
	if err != nil {
		return nil, err
	}

	return &DailyStats{
		Start:    start,
		End:      today,
		Exercise: exercise,
		Points:   DailySeries(records, start, today, exercise),
	}, nil
}

type WeeklyStats struct {
	Exercise string  `json:"exercise,omitempty"`
	Metric   string  `json:"metric"`
	Points   []Point `json:"points"`
}

// WeeklyStats builds the trailing weekly series: summed volume, or the best
// estimated one rep max when metric is "1rm" (which requires an exercise).
func (a *Analyzer) WeeklyStats(ctx context.Context, today string, weeksBack int, exercise, metric string) (_ *WeeklyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.weeklyStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := addDays(startOfISOWeek(today), -7*(weeksBack-1))
	records, err := a.repo.ListRange(ctx, start, today)
	if err != nil {
		return nil, err
	}

	stats := &WeeklyStats{
		Exercise: exercise,
		Metric:   metric,
	}
	if metric == "1rm" {
		stats.Points = Weekly1RMSeries(records, today, weeksBack, exercise)
	} else {
		stats.Points = WeeklyVolumeSeries(records, today, weeksBack, exercise)
	}
	return stats, nil
}

type AllTimeStats struct {
	Totals    AllTimeTotals   `json:"totals"`
	Exercises []string        `json:"exercises"`
	Exercise  string          `json:"exercise,omitempty"`
	PR        *ExerciseRecord `json:"pr,omitempty"`
	Best1RM   *ExerciseRecord `json:"best1RM,omitempty"`
}

// AllTimeStats aggregates all-time totals and, when an exercise is given,
// its PR and best estimated one rep max.
func (a *Analyzer) AllTimeStats(ctx context.Context, today string, exercise string) (_ *AllTimeStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.allTimeStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := a.repo.ListRange(ctx, historyStart, today)
	if err != nil {
		return nil, err
	}

	stats := &AllTimeStats{
		Totals:    ComputeAllTimeTotals(records),
		Exercises: ExerciseNames(records),
	}
	if exercise != "" {
		pr := ExercisePR(records, exercise)
		best := ExerciseBest1RM(records, exercise)
		stats.Exercise = exercise
		stats.PR = &pr
		stats.Best1RM = &best
	}
	return stats, nil
}

// DraftCoach grades an unsaved logging session against the prior 14 days
// of history (including today).
func (a *Analyzer) DraftCoach(ctx context.Context, today string, input DraftCoachInput) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.draftCoach")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := addDays(today, -13)
	history, err := a.repo.ListRange(ctx, start, today)
	if err != nil {
		return "", err
	}

	return DraftCoachText(input, history), nil
}

// Today returns the current day key in UTC.
func Today() string {
	return DayKey(time.Now())
}
