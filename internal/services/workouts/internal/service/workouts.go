package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
)

// Workouts manages logged workout entries
type Workouts struct {
	store   store.Store
	metrics *Metrics
}

type WorkoutsOption func(*Workouts) *Workouts

func WithWorkoutStore(st store.Store) WorkoutsOption {
	return func(s *Workouts) *Workouts {
		s.store = st
		return s
	}
}

func WithWorkoutMetrics(m *Metrics) WorkoutsOption {
	return func(s *Workouts) *Workouts {
		s.metrics = m
		return s
	}
}

func NewWorkouts(opts ...WorkoutsOption) *Workouts {
	s := &Workouts{}
	for _, opt := range opts {
		s = opt(s)
	}

	if s.store == nil {
		panic("store is required")
	}

	return s
}

func (s *Workouts) Get(ctx context.Context, id int64) (store.WorkoutData, error) {
	w, err := s.store.Workouts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.WorkoutData{}, serr.NewServiceError(err, http.StatusNotFound, "Workout not found").
				With("workout_id", id)
		}

		return store.WorkoutData{}, fmt.Errorf("get workout: %w", err)
	}

	return w, nil
}

func (s *Workouts) ListByUser(ctx context.Context, userID int64) ([]store.WorkoutData, error) {
	ws, err := s.store.Workouts().GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts by user: %w", err)
	}

	return ws, nil
}

func (s *Workouts) ListByCategory(ctx context.Context, categoryID int64) ([]store.WorkoutData, error) {
	ws, err := s.store.Workouts().GetAllByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list workouts by category: %w", err)
	}

	return ws, nil
}

type CreateWorkoutRequest struct {
	UserID     int64
	CategoryID int64
	Quantity   int
}

// Create logs a workout at the current time. The category must belong to the
// same user, otherwise a 404 ServiceError is returned.
func (s *Workouts) Create(ctx context.Context, r CreateWorkoutRequest) (store.WorkoutData, error) {
	w, err := s.store.Workouts().Create(ctx, store.WorkoutData{
		UserID:     r.UserID,
		CategoryID: r.CategoryID,
		Quantity:   r.Quantity,
	})
	if err != nil {
		if errors.Is(err, store.ErrReference) {
			return store.WorkoutData{}, serr.NewServiceError(err, http.StatusNotFound, "Category not found for user").
				With("user_id", r.UserID).
				With("category_id", r.CategoryID).
				With("constraint", store.ConstraintName(err))
		}

		return store.WorkoutData{}, fmt.Errorf("create workout: %w", err)
	}

	s.metrics.entityCreated("workout")
	return w, nil
}

func (s *Workouts) Delete(ctx context.Context, id int64) (store.WorkoutData, error) {
	w, err := s.store.Workouts().DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.WorkoutData{}, serr.NewServiceError(err, http.StatusNotFound, "Workout not found").
				With("workout_id", id)
		}

		return store.WorkoutData{}, fmt.Errorf("delete workout: %w", err)
	}

	s.metrics.entityDeleted("workout")
	return w, nil
}
