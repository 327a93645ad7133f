package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrExists    = errors.New("already exists")
	ErrReference = errors.New("referenced record does not exist")
)

// CRUD is the set of operations every entity repository supports.
type CRUD[T any] interface {
	Create(ctx context.Context, v T) (T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	DeleteByID(ctx context.Context, id int64) (T, error)
}

type UserRepository interface {
	CRUD[User]
	GetByCategoryID(ctx context.Context, categoryID int64) (User, error)
}

type CategoryRepository interface {
	CRUD[Category]
	GetAllByUserID(ctx context.Context, userID int64) ([]Category, error)
}

type WorkoutRepository interface {
	CRUD[WorkoutData]
	GetAllByUserID(ctx context.Context, userID int64) ([]WorkoutData, error)
	GetAllByCategoryID(ctx context.Context, categoryID int64) ([]WorkoutData, error)
}

type SocialAccountRepository interface {
	CRUD[SocialAccount]
	GetByProviderID(ctx context.Context, provider string, socialID int64) (SocialAccount, error)
	Link(ctx context.Context, acc SocialAccount) (SocialAccount, error)
}

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Workouts() WorkoutRepository
	SocialAccounts() SocialAccountRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
