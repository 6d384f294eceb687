package workouts

import (
	"context"
	"sort"
	"time"
)

// repoMock is an in-memory workoutsRepo used in handler and analyzer tests.
type repoMock struct {
	workouts []Workout
	nextID   int
	err      error
}

func NewMockWorkoutsRepo(workouts ...Workout) *repoMock {
	mock := &repoMock{nextID: 1}
	for _, w := range workouts {
		mock.add(w)
	}
	return mock
}

func (r *repoMock) add(w Workout) *Workout {
	w.ID = r.nextID
	r.nextID++
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	r.workouts = append(r.workouts, w)
	return &r.workouts[len(r.workouts)-1]
}

func (r *repoMock) Add(_ context.Context, workout Workout) (*Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.add(workout), nil
}

func (r *repoMock) AddRestDay(_ context.Context, date string) (*Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.add(Workout{Date: date, RestDay: true}), nil
}

func (r *repoMock) ListRange(_ context.Context, start, end string) ([]Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	var in []Workout
	for _, w := range r.workouts {
		if w.Date >= start && w.Date <= end {
			in = append(in, w)
		}
	}
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Date != in[j].Date {
			return in[i].Date < in[j].Date
		}
		return in[i].CreatedAt.Before(in[j].CreatedAt)
	})
	return in, nil
}

func (r *repoMock) ListForDate(_ context.Context, date string) ([]Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	var in []Workout
	for _, w := range r.workouts {
		if w.Date == date {
			in = append(in, w)
		}
	}
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].CreatedAt.Before(in[j].CreatedAt)
	})
	return in, nil
}
