package service

import (
	"context"

	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
)

type mockStore struct {
	users      *mockUsers
	categories *mockCategories
	workouts   *mockWorkouts
	accounts   *mockSocialAccounts
	WithTxFunc func(ctx context.Context, fn func(tx store.Store) error) error
}

func (m *mockStore) Users() store.UserRepository                   { return m.users }
func (m *mockStore) Categories() store.CategoryRepository          { return m.categories }
func (m *mockStore) Workouts() store.WorkoutRepository             { return m.workouts }
func (m *mockStore) SocialAccounts() store.SocialAccountRepository { return m.accounts }

func (m *mockStore) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m)
}

type mockUsers struct {
	CreateFunc          func(ctx context.Context, u store.User) (store.User, error)
	GetByIDFunc         func(ctx context.Context, id int64) (store.User, error)
	DeleteByIDFunc      func(ctx context.Context, id int64) (store.User, error)
	GetByCategoryIDFunc func(ctx context.Context, categoryID int64) (store.User, error)
}

func (m *mockUsers) Create(ctx context.Context, u store.User) (store.User, error) {
	return m.CreateFunc(ctx, u)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (store.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUsers) DeleteByID(ctx context.Context, id int64) (store.User, error) {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *mockUsers) GetByCategoryID(ctx context.Context, categoryID int64) (store.User, error) {
	return m.GetByCategoryIDFunc(ctx, categoryID)
}

type mockCategories struct {
	CreateFunc         func(ctx context.Context, c store.Category) (store.Category, error)
	GetByIDFunc        func(ctx context.Context, id int64) (store.Category, error)
	DeleteByIDFunc     func(ctx context.Context, id int64) (store.Category, error)
	GetAllByUserIDFunc func(ctx context.Context, userID int64) ([]store.Category, error)
}

func (m *mockCategories) Create(ctx context.Context, c store.Category) (store.Category, error) {
	return m.CreateFunc(ctx, c)
}

func (m *mockCategories) GetByID(ctx context.Context, id int64) (store.Category, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockCategories) DeleteByID(ctx context.Context, id int64) (store.Category, error) {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *mockCategories) GetAllByUserID(ctx context.Context, userID int64) ([]store.Category, error) {
	return m.GetAllByUserIDFunc(ctx, userID)
}

type mockWorkouts struct {
	CreateFunc             func(ctx context.Context, w store.WorkoutData) (store.WorkoutData, error)
	GetByIDFunc            func(ctx context.Context, id int64) (store.WorkoutData, error)
	DeleteByIDFunc         func(ctx context.Context, id int64) (store.WorkoutData, error)
	GetAllByUserIDFunc     func(ctx context.Context, userID int64) ([]store.WorkoutData, error)
	GetAllByCategoryIDFunc func(ctx context.Context, categoryID int64) ([]store.WorkoutData, error)
}

func (m *mockWorkouts) Create(ctx context.Context, w store.WorkoutData) (store.WorkoutData, error) {
	return m.CreateFunc(ctx, w)
}

func (m *mockWorkouts) GetByID(ctx context.Context, id int64) (store.WorkoutData, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockWorkouts) DeleteByID(ctx context.Context, id int64) (store.WorkoutData, error) {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *mockWorkouts) GetAllByUserID(ctx context.Context, userID int64) ([]store.WorkoutData, error) {
	return m.GetAllByUserIDFunc(ctx, userID)
}

func (m *mockWorkouts) GetAllByCategoryID(ctx context.Context, categoryID int64) ([]store.WorkoutData, error) {
	return m.GetAllByCategoryIDFunc(ctx, categoryID)
}

type mockSocialAccounts struct {
	CreateFunc          func(ctx context.Context, a store.SocialAccount) (store.SocialAccount, error)
	GetByIDFunc         func(ctx context.Context, id int64) (store.SocialAccount, error)
	DeleteByIDFunc      func(ctx context.Context, id int64) (store.SocialAccount, error)
	GetByProviderIDFunc func(ctx context.Context, provider string, socialID int64) (store.SocialAccount, error)
	LinkFunc            func(ctx context.Context, a store.SocialAccount) (store.SocialAccount, error)
}

func (m *mockSocialAccounts) Create(ctx context.Context, a store.SocialAccount) (store.SocialAccount, error) {
	return m.CreateFunc(ctx, a)
}

func (m *mockSocialAccounts) GetByID(ctx context.Context, id int64) (store.SocialAccount, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockSocialAccounts) DeleteByID(ctx context.Context, id int64) (store.SocialAccount, error) {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *mockSocialAccounts) GetByProviderID(ctx context.Context, provider string, socialID int64) (store.SocialAccount, error) {
	return m.GetByProviderIDFunc(ctx, provider, socialID)
}

func (m *mockSocialAccounts) Link(ctx context.Context, a store.SocialAccount) (store.SocialAccount, error) {
	return m.LinkFunc(ctx, a)
}

type mockHasher struct {
	HashFunc func(password string) (string, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	return m.HashFunc(password)
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      &mockUsers{},
		categories: &mockCategories{},
		workouts:   &mockWorkouts{},
		accounts:   &mockSocialAccounts{},
	}
}
