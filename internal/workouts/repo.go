package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrRestDayExists   = errors.New("rest day already logged for this date")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores a workout together with its exercises and sets in one
// transaction. Exercise and set order is preserved via order columns.
func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.date", workout.Date))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var workoutID int
	var createdAt time.Time
	if err = tx.QueryRow(
		ctx,
		`INSERT INTO workout (date, rest_day)
			VALUES ($1, false)
		RETURNING id, created_at;`,
		workout.Date,
	).Scan(&workoutID, &createdAt); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for i := range workout.Exercises {
		ex := &workout.Exercises[i]
		if err = tx.QueryRow(
			ctx,
			`INSERT INTO exercise (workout_id, name, ord)
				VALUES ($1, $2, $3)
			RETURNING id;`,
			workoutID, ex.Name, i,
		).Scan(&ex.ID); err != nil {
			return nil, fmt.Errorf("insert exercise: %w", err)
		}

		for j := range ex.Sets {
			s := &ex.Sets[j]
			if err = tx.QueryRow(
				ctx,
				`INSERT INTO exercise_set (exercise_id, ord, weight, reps)
					VALUES ($1, $2, $3, $4)
				RETURNING id;`,
				ex.ID, j, s.Weight, s.Reps,
			).Scan(&s.ID); err != nil {
				return nil, fmt.Errorf("insert set: %w", err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", workoutID))

	workout.ID = workoutID
	workout.CreatedAt = createdAt
	return &workout, nil
}

// AddRestDay stores a rest day record for the given date.
func (r *Repo) AddRestDay(ctx context.Context, date string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addRestDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.date", date))

	var workoutID int
	var createdAt time.Time
	if err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout (date, rest_day)
			VALUES ($1, true)
		RETURNING id, created_at;`,
		date,
	).Scan(&workoutID, &createdAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrRestDayExists
		}
		return nil, fmt.Errorf("insert rest day: %w", err)
	}

	return &Workout{
		ID:        workoutID,
		Date:      date,
		RestDay:   true,
		CreatedAt: createdAt,
	}, nil
}

// ListRange returns all workouts with date in [start, end], ordered by
// date, then creation time, then exercise and set order.
func (r *Repo) ListRange(ctx context.Context, start, end string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("start", start))
	span.SetAttributes(attribute.String("end", end))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				w.id, w.date::text, w.rest_day, w.created_at,
				e.id, e.name,
				s.id, s.weight, s.reps
			FROM workout w
			LEFT JOIN exercise e ON e.workout_id = w.id
			LEFT JOIN exercise_set s ON s.exercise_id = e.id
			WHERE w.date >= $1 AND w.date <= $2
			ORDER BY w.date ASC, w.created_at ASC, w.id ASC, e.ord ASC, s.ord ASC;`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2workouts(rows)
}

// ListForDate returns all workouts for exactly one day, oldest first.
func (r *Repo) ListForDate(ctx context.Context, date string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listForDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				w.id, w.date::text, w.rest_day, w.created_at,
				e.id, e.name,
				s.id, s.weight, s.reps
			FROM workout w
			LEFT JOIN exercise e ON e.workout_id = w.id
			LEFT JOIN exercise_set s ON s.exercise_id = e.id
			WHERE w.date = $1
			ORDER BY w.created_at ASC, w.id ASC, e.ord ASC, s.ord ASC;`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2workouts(rows)
}

// rows2workouts assembles the flat join result back into workouts. Rows
// arrive grouped by workout and exercise thanks to the query ordering.
func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var (
			workoutID int
			date      string
			restDay   bool
			createdAt time.Time
			exID      *int
			exName    *string
			setID     *int
			weight    *float64
			reps      *int
		)
		if err := rows.Scan(
			&workoutID, &date, &restDay, &createdAt,
			&exID, &exName,
			&setID, &weight, &reps,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(workouts) == 0 || workouts[len(workouts)-1].ID != workoutID {
			workouts = append(workouts, Workout{
				ID:        workoutID,
				Date:      date,
				RestDay:   restDay,
				CreatedAt: createdAt,
				Exercises: []Exercise{},
			})
		}
		w := &workouts[len(workouts)-1]

		if exID == nil {
			continue
		}
		if len(w.Exercises) == 0 || w.Exercises[len(w.Exercises)-1].ID != *exID {
			w.Exercises = append(w.Exercises, Exercise{
				ID:   *exID,
				Name: *exName,
				Sets: []Set{},
			})
		}
		ex := &w.Exercises[len(w.Exercises)-1]

		if setID == nil {
			continue
		}
		ex.Sets = append(ex.Sets, Set{
			ID:     *setID,
			Weight: weight,
			Reps:   reps,
		})
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}
