package workouts

import (
	"fmt"
	"strconv"
)

// WeeklyHighlights produces exactly three display strings for the current
// ISO week (Monday through today, inclusive): the best-volume day, the
// heaviest single set, and the most consistent exercise. Each slot has a
// fallback line when no data qualifies.
func WeeklyHighlights(records []Workout, today string) []string {
	weekStart := startOfISOWeek(today)
	week := recordsInWindow(records, weekStart, today)

	// greatest volume day
	var bestDate string
	bestVol := 0
	for _, w := range week {
		vol := Volume(w)
		if vol <= 0 {
			continue
		}
		if bestDate == "" || vol > bestVol {
			bestDate, bestVol = w.Date, vol
		}
	}

	// heaviest set
	var heavyEx string
	heavyWeight := 0.0
	for _, w := range week {
		if w.RestDay {
			continue
		}
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				if s.Weight == nil || *s.Weight <= 0 {
					continue
				}
				if heavyEx == "" || *s.Weight > heavyWeight {
					heavyEx, heavyWeight = ex.Name, *s.Weight
				}
			}
		}
	}

	// most consistent exercise: count each name at most once per record
	counts := make(map[string]int)
	var order []string
	for _, w := range week {
		if w.RestDay {
			continue
		}
		seen := make(map[string]struct{})
		for _, ex := range w.Exercises {
			if _, ok := seen[ex.Name]; ok {
				continue
			}
			seen[ex.Name] = struct{}{}
			if _, ok := counts[ex.Name]; !ok {
				order = append(order, ex.Name)
			}
			counts[ex.Name]++
		}
	}
	var mostEx string
	mostCount := 0
	for _, name := range order {
		if counts[name] > mostCount {
			mostEx, mostCount = name, counts[name]
		}
	}

	highlights := make([]string, 0, 3)

	if bestDate != "" {
		highlights = append(highlights, fmt.Sprintf(
			"Your best day was %s. You moved %s total volume. That’s real work.",
			weekdayShort(bestDate), groupThousands(bestVol),
		))
	} else {
		highlights = append(highlights,
			"No big numbers needed. Log one session this week and you’re back on track.")
	}

	if heavyEx != "" {
		highlights = append(highlights, fmt.Sprintf(
			"Heaviest moment: %s at %s. Keep that strength, even one top set counts.",
			heavyEx, formatWeight(heavyWeight),
		))
	} else {
		highlights = append(highlights,
			"Heaviest moment is waiting. One solid top set this week and you’ll set the tone.")
	}

	if mostEx != "" {
		highlights = append(highlights, fmt.Sprintf(
			"Most consistent lift: %s (%d× this week).", mostEx, mostCount,
		))
	} else {
		highlights = append(highlights,
			"Pick one “anchor lift” and repeat it 2–3× this week. That’s how progress shows up.")
	}

	return highlights
}

// TodayCoachText builds the home-screen coaching line from the records
// logged for a single day.
func TodayCoachText(dayRecords []Workout) string {
	var lifted []Workout
	rest := false
	for _, w := range dayRecords {
		if w.RestDay {
			rest = true
			continue
		}
		lifted = append(lifted, w)
	}

	if rest && len(lifted) == 0 {
		return "Rest day logged. Recovery counts and you’re still on track."
	}
	if len(lifted) == 0 {
		return "No log yet. One exercise is enough. Start small."
	}

	totalSets := 0
	totalReps := 0
	var topEx string
	topWeight := 0.0

	for _, w := range lifted {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				weight, reps, ok := s.qualifies()
				if !ok {
					continue
				}
				totalSets++
				totalReps += reps
				if topEx == "" || weight > topWeight {
					topEx, topWeight = ex.Name, weight
				}
			}
		}
	}

	if totalSets == 0 {
		return "Logged a session. Add one clean set and you’re done."
	}

	if topEx != "" {
		return fmt.Sprintf("Today: %d sets, %d reps. Best moment: %s @ %s.",
			totalSets, totalReps, topEx, formatWeight(topWeight))
	}
	return fmt.Sprintf("Today: %d sets, %d reps. Clean work.", totalSets, totalReps)
}

// formatWeight renders a weight without trailing zeros: 100 -> "100", 42.5 -> "42.5".
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// groupThousands formats a non-negative integer with comma separators.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
