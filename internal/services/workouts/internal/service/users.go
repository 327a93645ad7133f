package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
	"github.com/sjsjaniw/workout-backend/internal/services/workouts/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// maxLinkAttempts bounds how many times LoginOrRegister re-reads after losing
// the race for a (provider, social_id) pair.
const maxLinkAttempts = 2

// passwordHasher turns a plain password into the value stored in the database
type passwordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher hashes passwords with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Users manages user accounts and their social identities
type Users struct {
	store   store.Store
	hasher  passwordHasher
	metrics *Metrics
}

type UsersOption func(*Users) *Users

func WithUserStore(st store.Store) UsersOption {
	return func(s *Users) *Users {
		s.store = st
		return s
	}
}

func WithHasher(h passwordHasher) UsersOption {
	return func(s *Users) *Users {
		s.hasher = h
		return s
	}
}

func WithUserMetrics(m *Metrics) UsersOption {
	return func(s *Users) *Users {
		s.metrics = m
		return s
	}
}

func NewUsers(opts ...UsersOption) *Users {
	s := &Users{hasher: BcryptHasher{}}
	for _, opt := range opts {
		s = opt(s)
	}

	if s.store == nil {
		panic("store is required")
	}

	if s.hasher == nil {
		panic("password hasher is required")
	}

	return s
}

// Get returns the user or a 404 ServiceError.
func (s *Users) Get(ctx context.Context, id int64) (store.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, serr.NewServiceError(err, http.StatusNotFound, "User not found").
				With("user_id", id)
		}

		return store.User{}, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// GetByCategory returns the owner of the category.
func (s *Users) GetByCategory(ctx context.Context, categoryID int64) (store.User, error) {
	u, err := s.store.Users().GetByCategoryID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, serr.NewServiceError(err, http.StatusNotFound, "Category not found").
				With("category_id", categoryID)
		}

		return store.User{}, fmt.Errorf("get user by category: %w", err)
	}

	return u, nil
}

type RegisterRequest struct {
	Name     string
	Password *string
	SocialID *int64
	Provider *string
}

type RegisterResult struct {
	User    store.User
	Created bool
}

// Register creates a password user, or logs in through a social account when
// SocialID is set. Social registration requires a provider.
func (s *Users) Register(ctx context.Context, r RegisterRequest) (RegisterResult, error) {
	// social_id 0 means no social identity.
	if r.SocialID == nil || *r.SocialID == 0 {
		u, err := s.Create(ctx, CreateUserRequest{Name: r.Name, Password: r.Password})
		if err != nil {
			return RegisterResult{}, err
		}

		return RegisterResult{User: u, Created: true}, nil
	}

	if r.Provider == nil || *r.Provider == "" {
		return RegisterResult{}, serr.NewServiceError(nil, http.StatusBadRequest, "Provider is required for social register").
			With("social_id", *r.SocialID)
	}

	return s.LoginOrRegister(ctx, LoginRequest{
		Provider: *r.Provider,
		SocialID: *r.SocialID,
		Name:     r.Name,
	})
}

type CreateUserRequest struct {
	Name     string
	Password *string
}

// Create stores a new user. The password, when given, is hashed first.
func (s *Users) Create(ctx context.Context, r CreateUserRequest) (store.User, error) {
	u := store.User{Name: r.Name}
	if r.Password != nil {
		hash, err := s.hasher.Hash(*r.Password)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return store.User{}, serr.NewServiceError(err, http.StatusBadRequest, "Password is too long")
			}

			return store.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.Password = &hash
	}

	created, err := s.store.Users().Create(ctx, u)
	if err != nil {
		return store.User{}, fmt.Errorf("create user: %w", err)
	}

	s.metrics.entityCreated("user")
	return created, nil
}

// Delete removes the user together with everything it owns.
func (s *Users) Delete(ctx context.Context, id int64) (store.User, error) {
	u, err := s.store.Users().DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, serr.NewServiceError(err, http.StatusNotFound, "User not found").
				With("user_id", id)
		}

		return store.User{}, fmt.Errorf("delete user: %w", err)
	}

	s.metrics.entityDeleted("user")
	return u, nil
}

type LoginRequest struct {
	Provider string
	SocialID int64
	Name     string
}

// LoginOrRegister resolves (provider, social_id) to exactly one user, creating
// the user and the link in one transaction when the pair is unknown. A caller
// that loses a concurrent race for the same pair gets the winner's user.
func (s *Users) LoginOrRegister(ctx context.Context, r LoginRequest) (RegisterResult, error) {
	for range maxLinkAttempts {
		acc, err := s.store.SocialAccounts().GetByProviderID(ctx, r.Provider, r.SocialID)
		if err == nil {
			s.metrics.socialLogin("existing")
			return RegisterResult{User: acc.User}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return RegisterResult{}, fmt.Errorf("get social account: %w", err)
		}

		var created store.User
		err = s.store.WithTx(ctx, func(tx store.Store) error {
			u, err := tx.Users().Create(ctx, store.User{Name: r.Name})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			if _, err := tx.SocialAccounts().Link(ctx, store.SocialAccount{
				UserID:   u.ID,
				Provider: r.Provider,
				SocialID: r.SocialID,
			}); err != nil {
				return fmt.Errorf("link social account: %w", err)
			}

			created = u
			return nil
		})
		if err == nil {
			s.metrics.entityCreated("user")
			s.metrics.socialLogin("created")
			return RegisterResult{User: created, Created: true}, nil
		}
		if !errors.Is(err, store.ErrExists) {
			return RegisterResult{}, fmt.Errorf("register social account: %w", err)
		}
	}

	s.metrics.socialLogin("conflict")
	return RegisterResult{}, serr.NewServiceError(store.ErrExists, http.StatusConflict, "Social account is already being registered").
		With("provider", r.Provider).
		With("social_id", r.SocialID)
}
