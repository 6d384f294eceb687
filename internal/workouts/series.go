package workouts

import (
	"math"
	"sort"
)

// Point is one sample of a time series: X is the day key (or week start
// for weekly series), Y the rounded value for that bucket.
type Point struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// Epley1RM estimates the one rep max of a set: weight * (1 + reps/30).
func Epley1RM(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// workoutVolumeRaw is the unrounded volume of a workout, optionally
// restricted to one exercise name. Rounding happens per series bucket.
func workoutVolumeRaw(w Workout, exercise string) float64 {
	if w.RestDay {
		return 0
	}
	var v float64
	for _, ex := range w.Exercises {
		if exercise != "" && ex.Name != exercise {
			continue
		}
		for _, s := range ex.Sets {
			weight, reps, ok := s.qualifies()
			if !ok {
				continue
			}
			v += weight * float64(reps)
		}
	}
	return v
}

// DailySeries produces one point per calendar day in [start, end], with no
// gaps: days without qualifying records get 0. An empty exercise means
// whole-workout volume.
func DailySeries(records []Workout, start, end string, exercise string) []Point {
	byDate := make(map[string][]Workout, len(records))
	for _, w := range records {
		byDate[w.Date] = append(byDate[w.Date], w)
	}

	var points []Point
	for cur := start; cur <= end && cur != ""; cur = addDays(cur, 1) {
		var v float64
		for _, w := range byDate[cur] {
			v += workoutVolumeRaw(w, exercise)
		}
		points = append(points, Point{X: cur, Y: int(math.Round(v))})
	}
	return points
}

// WeeklyVolumeSeries produces one point per week for the trailing weeksBack
// weeks (Monday to Sunday, the most recent week being the one containing
// today). Records outside any bucket are ignored.
func WeeklyVolumeSeries(records []Workout, today string, weeksBack int, exercise string) []Point {
	thisMonday := startOfISOWeek(today)

	var points []Point
	for i := weeksBack - 1; i >= 0; i-- {
		weekStart := addDays(thisMonday, -7*i)
		weekEnd := addDays(weekStart, 6)

		var v float64
		for _, w := range records {
			if w.Date < weekStart || w.Date > weekEnd {
				continue
			}
			v += workoutVolumeRaw(w, exercise)
		}
		points = append(points, Point{X: weekStart, Y: int(math.Round(v))})
	}
	return points
}

// Weekly1RMSeries produces, per trailing week, the best Epley-estimated one
// rep max across qualifying sets of the named exercise. Weeks without a
// qualifying set get 0.
func Weekly1RMSeries(records []Workout, today string, weeksBack int, exercise string) []Point {
	thisMonday := startOfISOWeek(today)

	var points []Point
	for i := weeksBack - 1; i >= 0; i-- {
		weekStart := addDays(thisMonday, -7*i)
		weekEnd := addDays(weekStart, 6)

		top := 0.0
		for _, w := range records {
			if w.RestDay {
				continue
			}
			if w.Date < weekStart || w.Date > weekEnd {
				continue
			}
			for _, ex := range w.Exercises {
				if ex.Name != exercise {
					continue
				}
				for _, s := range ex.Sets {
					weight, reps, ok := s.qualifies()
					if !ok {
						continue
					}
					if est := Epley1RM(weight, reps); est > top {
						top = est
					}
				}
			}
		}
		points = append(points, Point{X: weekStart, Y: int(math.Round(top))})
	}
	return points
}

// ExerciseRecord is an all-time personal record: the value and the day it
// was set. A zero Date means the exercise was never performed with weight.
type ExerciseRecord struct {
	Value int    `json:"value"`
	Date  string `json:"date"`
}

// ExercisePR is the heaviest weight ever logged for an exercise, regardless
// of reps. Non-finite weights are skipped; ties keep the first found.
func ExercisePR(records []Workout, exercise string) ExerciseRecord {
	best := 0.0
	date := ""
	for _, w := range records {
		if w.RestDay {
			continue
		}
		for _, ex := range w.Exercises {
			if ex.Name != exercise {
				continue
			}
			for _, s := range ex.Sets {
				if s.Weight == nil {
					continue
				}
				weight := *s.Weight
				if math.IsNaN(weight) || math.IsInf(weight, 0) {
					continue
				}
				if weight > best {
					best, date = weight, w.Date
				}
			}
		}
	}
	return ExerciseRecord{Value: int(math.Round(best)), Date: date}
}

// ExerciseBest1RM is the best Epley estimate ever achieved for an exercise.
// It is tracked independently of the raw PR and can come from a different set.
func ExerciseBest1RM(records []Workout, exercise string) ExerciseRecord {
	best := 0.0
	date := ""
	for _, w := range records {
		if w.RestDay {
			continue
		}
		for _, ex := range w.Exercises {
			if ex.Name != exercise {
				continue
			}
			for _, s := range ex.Sets {
				weight, reps, ok := s.qualifies()
				if !ok {
					continue
				}
				if est := Epley1RM(weight, reps); est > best {
					best, date = est, w.Date
				}
			}
		}
	}
	return ExerciseRecord{Value: int(math.Round(best)), Date: date}
}

// AllTimeTotals aggregates total volume and the number of distinct days
// with at least one lifted (non-zero volume) workout.
type AllTimeTotals struct {
	TotalVolume int `json:"totalVolume"`
	DaysLifted  int `json:"daysLifted"`
}

func ComputeAllTimeTotals(records []Workout) AllTimeTotals {
	var total float64
	liftedDays := make(map[string]struct{})
	for _, w := range records {
		if w.RestDay {
			continue
		}
		v := workoutVolumeRaw(w, "")
		if v > 0 {
			total += v
			liftedDays[w.Date] = struct{}{}
		}
	}
	return AllTimeTotals{
		TotalVolume: int(math.Round(total)),
		DaysLifted:  len(liftedDays),
	}
}

// ExerciseNames returns the sorted distinct exercise names across all
// non-rest records.
func ExerciseNames(records []Workout) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, w := range records {
		if w.RestDay {
			continue
		}
		for _, ex := range w.Exercises {
			if _, ok := seen[ex.Name]; ok {
				continue
			}
			seen[ex.Name] = struct{}{}
			names = append(names, ex.Name)
		}
	}
	sort.Strings(names)
	return names
}
