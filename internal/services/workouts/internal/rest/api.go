package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sjsjaniw/workout-backend/internal/pkg/fn"
	"github.com/sjsjaniw/workout-backend/internal/pkg/httpx"
	"github.com/sjsjaniw/workout-backend/internal/pkg/middleware"
	"github.com/sjsjaniw/workout-backend/internal/pkg/router"
	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/service"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
)

type usersService interface {
	Get(ctx context.Context, id int64) (store.User, error)
	GetByCategory(ctx context.Context, categoryID int64) (store.User, error)
	Register(ctx context.Context, r service.RegisterRequest) (service.RegisterResult, error)
	Delete(ctx context.Context, id int64) (store.User, error)
}

type categoriesService interface {
	Get(ctx context.Context, id int64) (store.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]store.Category, error)
	Create(ctx context.Context, r service.CreateCategoryRequest) (store.Category, error)
	Delete(ctx context.Context, id int64) (store.Category, error)
}

type workoutsService interface {
	Get(ctx context.Context, id int64) (store.WorkoutData, error)
	ListByUser(ctx context.Context, userID int64) ([]store.WorkoutData, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]store.WorkoutData, error)
	Create(ctx context.Context, r service.CreateWorkoutRequest) (store.WorkoutData, error)
	Delete(ctx context.Context, id int64) (store.WorkoutData, error)
}

const (
	usersMount      = "/users"
	categoriesMount = "/categories"
	workoutsMount   = "/workoutsdata"
)

// Mounts lists the resource prefixes served by the API.
func Mounts() []string {
	return []string{usersMount, categoriesMount, workoutsMount}
}

type API struct {
	users      usersService
	categories categoriesService
	workouts   workoutsService
	validate   *validator.Validate
	router     *router.Router
}

// NewAPI mounts the users, categories and workoutsdata resources. Middleware
// given here wraps every resource route.
func NewAPI(users usersService, categories categoriesService, workouts workoutsService, mw ...router.Middleware) *API {
	api := &API{
		users:      users,
		categories: categories,
		workouts:   workouts,
		validate:   newValidator(),
		router:     router.New(),
	}

	api.router.Use(mw...)
	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.router.ServeHTTP(w, r)
}

func (api *API) mount() {
	users := api.router.SubRouter(usersMount)
	users.HandleFunc("GET /category", api.handleGetUserByCategory)
	users.HandleFunc("GET /category/{$}", api.handleGetUserByCategory)
	users.HandleFunc("GET /{id}", api.handleGetUser)
	users.HandleFunc("POST /{$}", api.handleCreateUser)
	users.HandleFunc("DELETE /{id}", api.handleDeleteUser)

	categories := api.router.SubRouter(categoriesMount)
	categories.HandleFunc("GET /user", api.handleListCategories)
	categories.HandleFunc("GET /user/{$}", api.handleListCategories)
	categories.HandleFunc("GET /{id}", api.handleGetCategory)
	categories.HandleFunc("POST /{$}", api.handleCreateCategory)
	categories.HandleFunc("DELETE /{id}", api.handleDeleteCategory)

	workouts := api.router.SubRouter(workoutsMount)
	workouts.HandleFunc("GET /user", api.handleListWorkoutsByUser)
	workouts.HandleFunc("GET /user/{$}", api.handleListWorkoutsByUser)
	workouts.HandleFunc("GET /category", api.handleListWorkoutsByCategory)
	workouts.HandleFunc("GET /category/{$}", api.handleListWorkoutsByCategory)
	workouts.HandleFunc("GET /{id}", api.handleGetWorkout)
	workouts.HandleFunc("POST /{$}", api.handleCreateWorkout)
	workouts.HandleFunc("DELETE /{id}", api.handleDeleteWorkout)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// decode reads the JSON body into req and validates it. Both failures are
// reported as 400.
func (api *API) decode(r *http.Request, req any) error {
	if err := httpx.ReadJSON(r, req); err != nil {
		return serr.NewServiceError(err, http.StatusBadRequest, "invalid request body")
	}

	if err := api.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate request: %w", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, validationMessage(fe))
		}

		return serr.NewServiceError(err, http.StatusBadRequest, "%s", strings.Join(msgs, "; "))
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func writeResponse(w http.ResponseWriter, r *http.Request, status int, resp any) {
	if err := httpx.WriteJSON(w, status, resp); err != nil {
		httpx.HandleErr(w, r, fmt.Errorf("write response json: %w", err))
	}
}

// writeDeleted logs the deletion together with the authenticated client, if any,
// and writes the confirmation body.
func writeDeleted(w http.ResponseWriter, r *http.Request, entity string, id int64) {
	slog.Info("record deleted",
		"entity", entity,
		"id", id,
		"client", middleware.UserIDFromContext(r.Context()),
		"request_id", middleware.RequestIDFromContext(r.Context()))

	writeResponse(w, r, http.StatusOK, map[string]string{fmt.Sprintf("%s with id %d", entity, id): "was deleted"})
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(u store.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

func (api *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	u, err := api.users.Get(r.Context(), id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, toUserResponse(u))
}

func (api *API) handleGetUserByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := httpx.QueryID(r, "category_id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	u, err := api.users.GetByCategory(r.Context(), categoryID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, toUserResponse(u))
}

type createUserRequest struct {
	Name     string  `json:"name" validate:"required,max=150"`
	Password *string `json:"password" validate:"omitnil,max=255"`
	SocialID *int64  `json:"social_id" validate:"omitnil,gte=0"`
	Provider *string `json:"provider" validate:"omitnil,max=50"`
}

// handleCreateUser registers a password user, or logs in through a social
// account when social_id is set. An existing social account answers 200.
func (api *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := api.decode(r, &req); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	res, err := api.users.Register(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
		SocialID: req.SocialID,
		Provider: req.Provider,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}

	writeResponse(w, r, status, toUserResponse(res.User))
}

func (api *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if _, err := api.users.Delete(r.Context(), id); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeDeleted(w, r, "User", id)
}

type categoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
}

func toCategoryResponse(c store.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, UserID: c.UserID}
}

func (api *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.QueryID(r, "user_id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	cats, err := api.categories.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, fn.Map(cats, toCategoryResponse))
}

func (api *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	c, err := api.categories.Get(r.Context(), id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, toCategoryResponse(c))
}

type createCategoryRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required,max=150"`
}

func (api *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := api.decode(r, &req); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	c, err := api.categories.Create(r.Context(), service.CreateCategoryRequest{
		UserID: req.UserID,
		Name:   req.Name,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, toCategoryResponse(c))
}

func (api *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if _, err := api.categories.Delete(r.Context(), id); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeDeleted(w, r, "Category", id)
}

type workoutResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CategoryID int64     `json:"category_id"`
	Quantity   int       `json:"quantity"`
	Time       time.Time `json:"time"`
}

func toWorkoutResponse(wd store.WorkoutData) workoutResponse {
	return workoutResponse{
		ID:         wd.ID,
		UserID:     wd.UserID,
		CategoryID: wd.CategoryID,
		Quantity:   wd.Quantity,
		Time:       wd.Time,
	}
}

func (api *API) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	wd, err := api.workouts.Get(r.Context(), id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, toWorkoutResponse(wd))
}

func (api *API) handleListWorkoutsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.QueryID(r, "user_id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	ws, err := api.workouts.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, fn.Map(ws, toWorkoutResponse))
}

func (api *API) handleListWorkoutsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := httpx.QueryID(r, "category_id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	ws, err := api.workouts.ListByCategory(r.Context(), categoryID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, fn.Map(ws, toWorkoutResponse))
}

type createWorkoutRequest struct {
	UserID     int64 `json:"user_id" validate:"required,gt=0"`
	CategoryID int64 `json:"category_id" validate:"required,gt=0"`
	Quantity   *int  `json:"quantity" validate:"required,gte=0,lte=2147483647"`
}

func (api *API) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := api.decode(r, &req); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	wd, err := api.workouts.Create(r.Context(), service.CreateWorkoutRequest{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Quantity:   *req.Quantity,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, toWorkoutResponse(wd))
}

func (api *API) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if _, err := api.workouts.Delete(r.Context(), id); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	writeDeleted(w, r, "Workout", id)
}
