package workouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func workoutOn(date string, exercises ...Exercise) Workout {
	return Workout{Date: date, Exercises: exercises}
}

func restDayOn(date string) Workout {
	return Workout{Date: date, RestDay: true}
}

func benchPress(sets ...Set) Exercise {
	return Exercise{Name: "Bench Press", Sets: sets}
}

func TestVolume(t *testing.T) {
	t.Run("sets without both values are excluded", func(t *testing.T) {
		w := workoutOn("2024-01-01", benchPress(
			NewSet(100, 5),
			Set{}, // weight and reps both absent
		))
		assert.Equal(t, 500, Volume(w))
	})

	t.Run("rest day is always zero", func(t *testing.T) {
		w := restDayOn("2024-01-01")
		assert.Equal(t, 0, Volume(w))
	})

	t.Run("non-positive values are excluded", func(t *testing.T) {
		w := workoutOn("2024-01-01", benchPress(
			NewSet(100, 5),
			NewSet(-50, 5),
			NewSet(80, 0),
			NewSet(0, 10),
		))
		assert.Equal(t, 500, Volume(w))
	})

	t.Run("partial sets are excluded", func(t *testing.T) {
		weight := 60.0
		reps := 8
		w := workoutOn("2024-01-01", benchPress(
			Set{Weight: &weight},
			Set{Reps: &reps},
			NewSet(60, 8),
		))
		assert.Equal(t, 480, Volume(w))
	})

	t.Run("volume is rounded", func(t *testing.T) {
		w := workoutOn("2024-01-01", benchPress(NewSet(20.55, 3)))
		// 61.65 rounds up
		assert.Equal(t, 62, Volume(w))
	})

	t.Run("multiple exercises sum up", func(t *testing.T) {
		w := workoutOn("2024-01-01",
			benchPress(NewSet(100, 5), NewSet(100, 5)),
			Exercise{Name: "Squat", Sets: []Set{NewSet(140, 3)}},
		)
		assert.Equal(t, 1420, Volume(w))
	})
}

func TestStreak(t *testing.T) {
	records := []Workout{
		workoutOn("2024-01-03", benchPress(NewSet(100, 5))),
		workoutOn("2024-01-04", benchPress(NewSet(100, 5))),
		restDayOn("2024-01-05"),
	}

	t.Run("counts back from today", func(t *testing.T) {
		assert.Equal(t, 3, Streak(records, "2024-01-05"))
	})

	t.Run("zero when nothing logged today", func(t *testing.T) {
		assert.Equal(t, 0, Streak(records, "2024-01-06"))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		withGap := append([]Workout{workoutOn("2024-01-01", benchPress(NewSet(100, 5)))}, records...)
		// 2024-01-02 missing, so the older record does not extend the streak
		assert.Equal(t, 3, Streak(withGap, "2024-01-05"))
	})

	t.Run("duplicate records on one date count once", func(t *testing.T) {
		dup := append([]Workout{workoutOn("2024-01-05", benchPress(NewSet(50, 10)))}, records...)
		assert.Equal(t, 3, Streak(dup, "2024-01-05"))
	})

	t.Run("streak crosses month boundary", func(t *testing.T) {
		recs := []Workout{
			workoutOn("2024-01-31", benchPress(NewSet(100, 5))),
			workoutOn("2024-02-01", benchPress(NewSet(100, 5))),
		}
		assert.Equal(t, 2, Streak(recs, "2024-02-01"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, "2024-01-05"))
	})
}

func TestClassifyMood(t *testing.T) {
	today := "2024-03-10"

	t.Run("empty history is drained", func(t *testing.T) {
		assert.Equal(t, MoodDrained, ClassifyMood(nil, today))
	})

	t.Run("frequent logging with stable volume is locked in", func(t *testing.T) {
		// 5 of the last 7 days logged, same volume throughout, so trend == 0
		var records []Workout
		for _, date := range []string{"2024-03-10", "2024-03-09", "2024-03-08", "2024-03-07", "2024-03-06"} {
			records = append(records, workoutOn(date, benchPress(NewSet(100, 5))))
		}
		assert.Equal(t, MoodLockedIn, ClassifyMood(records, today))
	})

	t.Run("long streak keeps locked in despite volume collapse", func(t *testing.T) {
		// heavy volume 2-4 weeks ago, light volume in the last 7 days,
		// but 5 consecutive logged days ending today
		var records []Workout
		for _, date := range []string{"2024-02-20", "2024-02-22", "2024-02-25", "2024-02-28"} {
			records = append(records, workoutOn(date, benchPress(NewSet(100, 20))))
		}
		for _, date := range []string{"2024-03-10", "2024-03-09", "2024-03-08", "2024-03-07", "2024-03-06"} {
			records = append(records, workoutOn(date, benchPress(NewSet(20, 5))))
		}
		assert.Equal(t, MoodLockedIn, ClassifyMood(records, today))
	})

	t.Run("consistent but dipping volume is sore", func(t *testing.T) {
		// 4 of 7 days logged (ratio 0.571), not consecutive, volume way down vs 28d
		var records []Workout
		for _, date := range []string{"2024-02-15", "2024-02-18", "2024-02-21", "2024-02-24"} {
			records = append(records, workoutOn(date, benchPress(NewSet(100, 20))))
		}
		for _, date := range []string{"2024-03-10", "2024-03-08", "2024-03-06", "2024-03-04"} {
			records = append(records, workoutOn(date, benchPress(NewSet(20, 5))))
		}
		assert.Equal(t, MoodSore, ClassifyMood(records, today))
	})

	t.Run("some consistency is steady", func(t *testing.T) {
		records := []Workout{
			workoutOn("2024-03-10", benchPress(NewSet(100, 5))),
			workoutOn("2024-03-07", benchPress(NewSet(100, 5))),
			workoutOn("2024-03-04", benchPress(NewSet(100, 5))),
		}
		// 3 of 7 days logged: ratio ~0.43
		assert.Equal(t, MoodSteady, ClassifyMood(records, today))
	})

	t.Run("barely logging is drained", func(t *testing.T) {
		records := []Workout{
			workoutOn("2024-03-09", benchPress(NewSet(100, 5))),
		}
		assert.Equal(t, MoodDrained, ClassifyMood(records, today))
	})

	t.Run("rest days count for consistency but not volume", func(t *testing.T) {
		var records []Workout
		for _, date := range []string{"2024-03-10", "2024-03-09", "2024-03-08", "2024-03-07", "2024-03-06"} {
			records = append(records, restDayOn(date))
		}
		// ratio 0.714, no volume at all so trend == 0
		assert.Equal(t, MoodLockedIn, ClassifyMood(records, today))
	})
}
