package workouts

import (
	"math"
	"time"
)

// Workout is one logged day: either a rest day or a list of exercises.
// Multiple workouts can exist for the same date; analytics aggregate over them.
type Workout struct {
	ID        int        `json:"id"`
	Date      string     `json:"date"`
	RestDay   bool       `json:"restDay"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Exercise struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Set keeps weight and reps nullable: an absent value means "not recorded"
// and the set is skipped by volume and PR math.
type Set struct {
	ID     int      `json:"id"`
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

// qualifies returns the weight and reps of a set when both are present,
// finite and strictly positive.
func (s Set) qualifies() (weight float64, reps int, ok bool) {
	if s.Weight == nil || s.Reps == nil {
		return 0, 0, false
	}
	w, r := *s.Weight, *s.Reps
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, 0, false
	}
	if w <= 0 || r <= 0 {
		return 0, 0, false
	}
	return w, r, true
}

// NewSet is a small helper for building sets in tests and seed data.
func NewSet(weight float64, reps int) Set {
	return Set{Weight: &weight, Reps: &reps}
}
