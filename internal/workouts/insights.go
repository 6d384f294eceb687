package workouts

import "math"

// Mood is a rough training-state label derived from logging consistency
// and volume trend over the trailing 7 and 28 days.
type Mood string

const (
	MoodLockedIn Mood = "locked in"
	MoodSteady   Mood = "steady"
	MoodSore     Mood = "sore"
	MoodDrained  Mood = "drained"
)

// Volume sums weight x reps over all qualifying sets of a workout,
// rounded to the nearest whole number. Rest days always yield 0.
func Volume(w Workout) int {
	if w.RestDay {
		return 0
	}
	var v float64
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			weight, reps, ok := s.qualifies()
			if !ok {
				continue
			}
			v += weight * float64(reps)
		}
	}
	return int(math.Round(v))
}

// Streak counts consecutive calendar days with at least one logged record,
// walking backward from today. Rest days count as logged days. A day with
// nothing logged breaks the streak, including today itself.
func Streak(records []Workout, today string) int {
	days := make(map[string]struct{}, len(records))
	for _, w := range records {
		days[w.Date] = struct{}{}
	}

	streak := 0
	for cur := today; ; cur = addDays(cur, -1) {
		if _, ok := days[cur]; !ok {
			break
		}
		streak++
	}
	return streak
}

// ClassifyMood derives a mood label from the full record history and a
// reference day. Both trailing windows include the reference day itself.
func ClassifyMood(records []Workout, today string) Mood {
	last7 := recordsInWindow(records, addDays(today, -6), today)
	last28 := recordsInWindow(records, addDays(today, -27), today)

	// consistency: distinct days with at least one record
	loggedDays7 := make(map[string]struct{}, len(last7))
	for _, w := range last7 {
		loggedDays7[w.Date] = struct{}{}
	}
	loggedRatio7 := float64(len(loggedDays7)) / 7

	// volume trend (7d vs 28d), negative = doing less volume lately
	avgVol7 := avgVolume(last7)
	avgVol28 := avgVolume(last28)
	trend := 0.0
	if avgVol28 > 0 {
		trend = (avgVol7 - avgVol28) / avgVol28
	}

	streak := Streak(records, today)

	switch {
	case loggedRatio7 >= 0.7 && (trend > -0.25 || streak >= 4):
		return MoodLockedIn
	case loggedRatio7 >= 0.5 && trend < -0.25:
		return MoodSore
	case loggedRatio7 >= 0.35:
		return MoodSteady
	default:
		return MoodDrained
	}
}

func recordsInWindow(records []Workout, start, end string) []Workout {
	var in []Workout
	for _, w := range records {
		if w.Date >= start && w.Date <= end {
			in = append(in, w)
		}
	}
	return in
}

// avgVolume is the mean volume over non-rest records, 0 when there are none.
func avgVolume(records []Workout) float64 {
	var sum float64
	count := 0
	for _, w := range records {
		if w.RestDay {
			continue
		}
		sum += float64(Volume(w))
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
