package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
)

// Categories manages the workout types of a user
type Categories struct {
	store   store.Store
	metrics *Metrics
}

type CategoriesOption func(*Categories) *Categories

func WithCategoryStore(st store.Store) CategoriesOption {
	return func(s *Categories) *Categories {
		s.store = st
		return s
	}
}

func WithCategoryMetrics(m *Metrics) CategoriesOption {
	return func(s *Categories) *Categories {
		s.metrics = m
		return s
	}
}

func NewCategories(opts ...CategoriesOption) *Categories {
	s := &Categories{}
	for _, opt := range opts {
		s = opt(s)
	}

	if s.store == nil {
		panic("store is required")
	}

	return s
}

func (s *Categories) Get(ctx context.Context, id int64) (store.Category, error) {
	c, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Category{}, serr.NewServiceError(err, http.StatusNotFound, "Category not found").
				With("category_id", id)
		}

		return store.Category{}, fmt.Errorf("get category: %w", err)
	}

	return c, nil
}

// ListByUser returns the user's categories. An unknown user has none.
func (s *Categories) ListByUser(ctx context.Context, userID int64) ([]store.Category, error) {
	cats, err := s.store.Categories().GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return cats, nil
}

type CreateCategoryRequest struct {
	UserID int64
	Name   string
}

func (s *Categories) Create(ctx context.Context, r CreateCategoryRequest) (store.Category, error) {
	c, err := s.store.Categories().Create(ctx, store.Category{UserID: r.UserID, Name: r.Name})
	if err != nil {
		if errors.Is(err, store.ErrReference) {
			return store.Category{}, serr.NewServiceError(err, http.StatusNotFound, "User not found").
				With("user_id", r.UserID).
				With("constraint", store.ConstraintName(err))
		}

		return store.Category{}, fmt.Errorf("create category: %w", err)
	}

	s.metrics.entityCreated("category")
	return c, nil
}

// Delete removes the category and its workouts.
func (s *Categories) Delete(ctx context.Context, id int64) (store.Category, error) {
	c, err := s.store.Categories().DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Category{}, serr.NewServiceError(err, http.StatusNotFound, "Category not found").
				With("category_id", id)
		}

		return store.Category{}, fmt.Errorf("delete category: %w", err)
	}

	s.metrics.entityDeleted("category")
	return c, nil
}
