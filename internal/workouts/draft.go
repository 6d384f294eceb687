package workouts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DraftSet mirrors the raw text inputs of the logging screen: both fields
// may be empty or non-numeric while the user is still typing.
type DraftSet struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

type DraftExercise struct {
	Name string     `json:"name"`
	Sets []DraftSet `json:"sets"`
}

// DraftCoachInput is the state of an unsaved logging session: the exercise
// currently being filled in, its draft sets, and the exercises already
// added to today's log.
type DraftCoachInput struct {
	CurrentExercise string          `json:"currentExercise"`
	CurrentSets     []DraftSet      `json:"currentSets"`
	Log             []DraftExercise `json:"log"`
}

type liftClass string

const (
	liftPush    liftClass = "push"
	liftPull    liftClass = "pull"
	liftLegs    liftClass = "legs"
	liftHinge   liftClass = "hinge"
	liftGeneral liftClass = "general"
)

// classifyLift buckets an exercise name by substring matching on the
// lowercased name. Checks are ordered, first match wins.
func classifyLift(name string) liftClass {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "bench") || strings.Contains(n, "press"):
		return liftPush
	case strings.Contains(n, "row") || strings.Contains(n, "pulldown"):
		return liftPull
	case strings.Contains(n, "squat") || strings.Contains(n, "leg press") || strings.Contains(n, "calf"):
		return liftLegs
	case strings.Contains(n, "deadlift") || strings.Contains(n, "romanian"):
		return liftHinge
	default:
		return liftGeneral
	}
}

func cueFor(exName string) string {
	switch classifyLift(exName) {
	case liftPush:
		return "Shoulders back. Controlled touch. Drive straight up."
	case liftPull:
		return "Elbows down/back. Pause the squeeze. Don’t swing."
	case liftLegs:
		return "Brace hard. Knees track. Controlled depth."
	case liftHinge:
		return "Brace first. Lats tight. No yanking."
	default:
		return "Smooth reps. Full range. No ego."
	}
}

// parseDraftNum parses a draft text field the way the logging screen reads
// it: empty or non-numeric input never qualifies.
func parseDraftNum(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// DraftCoachText builds the logging-screen coaching line. It guides the
// user before anything is saved, then grades the session against a
// per-exercise baseline built from the prior 14 days of history.
func DraftCoachText(input DraftCoachInput, history14 []Workout) string {
	currentVolume := 0.0
	for _, s := range input.CurrentSets {
		w, okW := parseDraftNum(s.Weight)
		r, okR := parseDraftNum(s.Reps)
		if okW && okR && w > 0 && r > 0 {
			currentVolume += w * r
		}
	}

	startedExercise := strings.TrimSpace(input.CurrentExercise) != ""
	hasDraftInputs := false
	hasWeight := false
	hasReps := false
	for _, s := range input.CurrentSets {
		if strings.TrimSpace(s.Weight) != "" {
			hasDraftInputs = true
			hasWeight = true
		}
		if strings.TrimSpace(s.Reps) != "" {
			hasDraftInputs = true
			hasReps = true
		}
	}

	if len(input.Log) == 0 && currentVolume == 0 && !startedExercise && !hasDraftInputs {
		return "Pick one lift. One clean set. Then decide if you want more."
	}

	if len(input.Log) == 0 {
		if hasWeight && !hasReps {
			return "Add reps, then add the exercise to the log."
		}
		if !hasWeight && hasReps {
			return "Add weight, then add the exercise to the log."
		}
		return "Finish this exercise, then add it to the log."
	}

	// baseline from the last 14 days: best weight per exercise, rest days excluded
	baseline := make(map[string]float64)
	for _, w := range history14 {
		if w.RestDay {
			continue
		}
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				if s.Weight == nil || *s.Weight <= 0 {
					continue
				}
				if *s.Weight > baseline[ex.Name] {
					baseline[ex.Name] = *s.Weight
				}
			}
		}
	}

	// today's log: totals and the heaviest set per exercise
	totalSets := 0
	repsSum := 0.0
	todayTop := make(map[string]float64)
	var topOrder []string
	for _, ex := range input.Log {
		for _, s := range ex.Sets {
			w, okW := parseDraftNum(s.Weight)
			r, okR := parseDraftNum(s.Reps)
			if !okW || !okR || w <= 0 || r <= 0 {
				continue
			}
			totalSets++
			repsSum += r
			if _, ok := todayTop[ex.Name]; !ok {
				topOrder = append(topOrder, ex.Name)
			}
			if w > todayTop[ex.Name] {
				todayTop[ex.Name] = w
			}
		}
	}

	if totalSets == 0 {
		return "Add one clean working set, then save."
	}

	avgReps := repsSum / float64(totalSets)

	// main lift = heaviest top set today, first found wins ties
	mainEx := ""
	mainWeight := -1.0
	for _, name := range topOrder {
		if todayTop[name] > mainWeight {
			mainEx, mainWeight = name, todayTop[name]
		}
	}
	if mainEx == "" {
		return "Good work. Save it clean and recover."
	}

	baseTop := baseline[mainEx]
	hasBaseline := baseTop > 0

	if hasBaseline && mainWeight/baseTop >= 0.9 {
		return fmt.Sprintf("Relative heavy day on %s. %s", mainEx, cueFor(mainEx))
	}
	if avgReps >= 8 {
		return fmt.Sprintf("Higher-rep day. Control the lowering. %s", cueFor(mainEx))
	}
	if avgReps <= 5 {
		return fmt.Sprintf("Low-rep day. Full rest. Crisp reps. %s", cueFor(mainEx))
	}
	if totalSets <= 3 {
		return "Short session is still a win. Save it clean."
	}
	if totalSets <= 8 {
		return "Good pace. Don’t rush reps. Stay structured."
	}
	return "That’s plenty. End on a clean set and recover."
}
