package workouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

const (
	defaultDailyStatsDays   = 28
	defaultWeeklyStatsWeeks = 12
	maxDailyStatsDays       = 366
	maxWeeklyStatsWeeks     = 104
	maxExerciseNameLen      = 80

	insightsCacheTTLSeconds = 60
)

type encouragementProvider interface {
	RandomLine() string
}

type AddWorkoutRequest struct {
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

type AddWorkoutResponse struct {
	WorkoutID int `json:"workoutId"`
}

type AddRestDayRequest struct {
	Date string `json:"date"`
}

type ListRangeResponse struct {
	Workouts []Workout `json:"workouts"`
}

type ListForDateResponse struct {
	Date     string    `json:"date"`
	Workouts []Workout `json:"workouts"`
}

type InsightsSummaryResponse struct {
	InsightsSummary
	Encouragement string `json:"encouragement"`
}

type DraftCoachRequest struct {
	Date string `json:"date"`
	DraftCoachInput
}

type DraftCoachResponse struct {
	CoachLine string `json:"coachLine"`
}

type Handler struct {
	repo           workoutsRepo
	analyzer       *Analyzer
	cache          *freecache.Cache
	encouragements encouragementProvider
	metrics        *metrics.Manager
}

func NewHandler(
	repo workoutsRepo,
	cache *freecache.Cache,
	encouragements encouragementProvider,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       NewAnalyzer(repo),
		cache:          cache,
		encouragements: encouragements,
		metrics:        metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if !IsValidDay(req.Date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	if len(req.Exercises) == 0 {
		http.Error(w, "error, no exercises given", http.StatusBadRequest)
		return
	}
	for _, ex := range req.Exercises {
		if ex.Name == "" || len(ex.Name) > maxExerciseNameLen {
			http.Error(w, "error, exercise name empty or too long", http.StatusBadRequest)
			return
		}
		if len(ex.Sets) == 0 {
			http.Error(w, fmt.Sprintf("error, exercise %s has no sets", ex.Name), http.StatusBadRequest)
			return
		}
	}

	added, err := handler.repo.Add(ctx, Workout{
		Date:      req.Date,
		Exercises: req.Exercises,
	})
	if err != nil {
		log.Errorf("failed to add workout for %s: %s", req.Date, err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsSaved.Inc()
	handler.invalidateInsightsCache(added.Date)

	respJson, err := json.Marshal(AddWorkoutResponse{WorkoutID: added.ID})
	if err != nil {
		log.Errorf("failed to marshal add workout response: %s", err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added for %s: id %d", added.Date, added.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleAddRestDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.addRestDay")
	defer span.End()

	var req AddRestDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add rest day, unmarshal json params: %s", err)
		http.Error(w, "add rest day failed", http.StatusBadRequest)
		return
	}

	if !IsValidDay(req.Date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.AddRestDay(ctx, req.Date)
	if err != nil {
		if errors.Is(err, ErrRestDayExists) {
			http.Error(w, "error, rest day already logged", http.StatusConflict)
			return
		}
		log.Errorf("failed to add rest day for %s: %s", req.Date, err)
		http.Error(w, "error, failed to add rest day", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterRestDaysSaved.Inc()
	handler.invalidateInsightsCache(added.Date)

	respJson, err := json.Marshal(AddWorkoutResponse{WorkoutID: added.ID})
	if err != nil {
		log.Errorf("failed to marshal add rest day response: %s", err)
		http.Error(w, "error, failed to add rest day", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleListRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listRange")
	defer span.End()

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if !IsValidDay(start) || !IsValidDay(end) {
		http.Error(w, "error, start and end must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	workouts, err := handler.repo.ListRange(ctx, start, end)
	if err != nil {
		log.Errorf("failed to list workouts [%s - %s]: %s", start, end, err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListRangeResponse{Workouts: workouts})
	if err != nil {
		log.Errorf("failed to marshal workouts: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleListForDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listForDate")
	defer span.End()

	date := r.URL.Query().Get("date")
	if !IsValidDay(date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	workouts, err := handler.repo.ListForDate(ctx, date)
	if err != nil {
		log.Errorf("failed to list workouts for %s: %s", date, err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListForDateResponse{Date: date, Workouts: workouts})
	if err != nil {
		log.Errorf("failed to marshal workouts: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleInsightsSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.insightsSummary")
	defer span.End()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = Today()
	}
	if !IsValidDay(date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	cacheKey := insightsCacheKey(date)
	if cached, err := handler.cache.Get(cacheKey); err == nil {
		handler.metrics.CounterInsightsServed.Inc()
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	summary, err := handler.analyzer.InsightsSummary(ctx, date)
	if err != nil {
		log.Errorf("failed to get insights summary for %s: %s", date, err)
		http.Error(w, "error, failed to get insights summary", http.StatusInternalServerError)
		return
	}

	resp := InsightsSummaryResponse{
		InsightsSummary: *summary,
		Encouragement:   handler.encouragements.RandomLine(),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal insights summary: %s", err)
		http.Error(w, "error, failed to get insights summary", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, respJson, insightsCacheTTLSeconds); err != nil {
		// just log the error, not critical
		log.Warnf("failed to cache insights summary for %s: %s", date, err)
	}

	handler.metrics.CounterInsightsServed.Inc()
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.dailyStats")
	defer span.End()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = Today()
	}
	if !IsValidDay(date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	days := defaultDailyStatsDays
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed < 1 || parsed > maxDailyStatsDays {
			http.Error(w, "error, invalid days param", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	stats, err := handler.analyzer.DailyStats(ctx, date, days, r.URL.Query().Get("exercise"))
	if err != nil {
		log.Errorf("failed to get daily stats for %s: %s", date, err)
		http.Error(w, "error, failed to get daily stats", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal daily stats: %s", err)
		http.Error(w, "error, failed to get daily stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.weeklyStats")
	defer span.End()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = Today()
	}
	if !IsValidDay(date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	weeks := defaultWeeklyStatsWeeks
	if weeksParam := r.URL.Query().Get("weeks"); weeksParam != "" {
		parsed, err := strconv.Atoi(weeksParam)
		if err != nil || parsed < 1 || parsed > maxWeeklyStatsWeeks {
			http.Error(w, "error, invalid weeks param", http.StatusBadRequest)
			return
		}
		weeks = parsed
	}

	exercise := r.URL.Query().Get("exercise")
	metric := r.URL.Query().Get("metric")
	switch metric {
	case "", "volume":
		metric = "volume"
	case "1rm":
		if exercise == "" {
			http.Error(w, "error, metric 1rm requires an exercise", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "error, invalid metric param", http.StatusBadRequest)
		return
	}

	stats, err := handler.analyzer.WeeklyStats(ctx, date, weeks, exercise, metric)
	if err != nil {
		log.Errorf("failed to get weekly stats for %s: %s", date, err)
		http.Error(w, "error, failed to get weekly stats", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal weekly stats: %s", err)
		http.Error(w, "error, failed to get weekly stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleAllTimeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.allTimeStats")
	defer span.End()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = Today()
	}
	if !IsValidDay(date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	stats, err := handler.analyzer.AllTimeStats(ctx, date, r.URL.Query().Get("exercise"))
	if err != nil {
		log.Errorf("failed to get all time stats: %s", err)
		http.Error(w, "error, failed to get all time stats", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal all time stats: %s", err)
		http.Error(w, "error, failed to get all time stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDraftCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.draftCoach")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req DraftCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("draft coach, unmarshal json params: %s", err)
		http.Error(w, "draft coach failed", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		req.Date = Today()
	}
	if !IsValidDay(req.Date) {
		http.Error(w, "error, date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	coachLine, err := handler.analyzer.DraftCoach(ctx, req.Date, req.DraftCoachInput)
	if err != nil {
		log.Errorf("failed to get draft coach line: %s", err)
		http.Error(w, "error, failed to get draft coach line", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DraftCoachResponse{CoachLine: coachLine})
	if err != nil {
		log.Errorf("failed to marshal draft coach response: %s", err)
		http.Error(w, "error, failed to get draft coach line", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func insightsCacheKey(date string) []byte {
	return []byte("insights-summary::" + date)
}

func (handler *Handler) invalidateInsightsCache(date string) {
	handler.cache.Del(insightsCacheKey(date))
}
