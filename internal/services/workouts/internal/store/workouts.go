package store

import (
	"context"
	"fmt"
	"time"
)

var workoutsTable = table[WorkoutData]{
	name:    "workoutdata",
	columns: []string{"id", "user_id", "category_id", "quantity", "time"},
	insert: func(w WorkoutData) ([]string, []any) {
		if w.Time.IsZero() {
			return []string{"user_id", "category_id", "quantity"},
				[]any{w.UserID, w.CategoryID, w.Quantity}
		}

		return []string{"user_id", "category_id", "quantity", "time"},
			[]any{w.UserID, w.CategoryID, w.Quantity, w.Time.UTC()}
	},
	scan: func(row scanner) (WorkoutData, error) {
		var (
			w WorkoutData
			t time.Time
		)

		if err := row.Scan(&w.ID, &w.UserID, &w.CategoryID, &w.Quantity, &t); err != nil {
			return WorkoutData{}, err
		}

		w.Time = t.UTC()
		return w, nil
	},
}

type Workouts struct {
	Repository[WorkoutData]
}

func (r Workouts) GetAllByUserID(ctx context.Context, userID int64) ([]WorkoutData, error) {
	query := fmt.Sprintf("SELECT %s FROM workoutdata WHERE user_id = $1 ORDER BY time, id", r.t.selectList(""))
	return r.many(ctx, query, userID)
}

func (r Workouts) GetAllByCategoryID(ctx context.Context, categoryID int64) ([]WorkoutData, error) {
	query := fmt.Sprintf("SELECT %s FROM workoutdata WHERE category_id = $1 ORDER BY time, id", r.t.selectList(""))
	return r.many(ctx, query, categoryID)
}
