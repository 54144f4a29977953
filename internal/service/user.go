package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/shopcart/internal/apperr"
	"github.com/shopcart/shopcart/internal/events"
	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/repository"
	"github.com/shopcart/shopcart/internal/validate"
)

// UserService handles user lifecycle and uniqueness rules.
type UserService struct {
	users  UserStore
	hasher PasswordHasher
	events events.Sink
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, hasher PasswordHasher, sink events.Sink) *UserService {
	if sink == nil {
		sink = events.NewNoop()
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		events: sink,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user. The email must not be in use; the
// password is stored only as a one-way hash.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.checkEmailAvailable(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// The service check above can race; the store's unique index
		// is authoritative.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.New(apperr.Conflict, "email is already in use")
		}
		return nil, err
	}

	s.events.Emit(ctx, "user_registered", slog.String("user_id", user.ID))

	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}
	return s.getUserByID(ctx, id)
}

// ListInput defines raw query parameters for listing; normalization
// happens inside the service.
type ListInput struct {
	SortOrder string
	Limit     string
	Offset    string
}

// List retrieves a page of users ordered by creation time. Malformed
// paging input degrades to defaults rather than erroring.
func (s *UserService) List(ctx context.Context, input ListInput) ([]*model.User, error) {
	order := validate.NormalizeSortOrder(input.SortOrder)
	limit := validate.NormalizeLimit(input.Limit)
	offset := validate.NormalizeOffset(input.Offset)

	return s.users.ListUsers(ctx, order, limit, offset)
}

// UpdateUserInput defines a partial user update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// Update applies a partial update. An email change re-runs the
// uniqueness check; a password change re-hashes.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}

	user, err := s.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := s.checkEmailAvailable(ctx, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if input.Username != nil {
		user.Username = *input.Username
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.New(apperr.Conflict, "email is already in use")
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "user_updated", slog.String("user_id", user.ID))

	return user, nil
}

// Remove deletes a user and returns the deleted record.
func (s *UserService) Remove(ctx context.Context, id string) (*model.User, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}

	user, err := s.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "user_removed", slog.String("user_id", user.ID))

	return user, nil
}

// getUserByID loads a user, classifying absence as not found.
func (s *UserService) getUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// checkEmailAvailable rejects emails already present in the store.
// The check also matches the caller's own row; updating a user to the
// email they already have is rejected the same way.
func (s *UserService) checkEmailAvailable(ctx context.Context, email string) error {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return apperr.New(apperr.Conflict, "email is already in use")
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	return err
}
