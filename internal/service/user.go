package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

// UserService registers and manages users.
type UserService interface {
	// Register returns the existing user when the uid is already known, otherwise
	// validates and creates it. created reports which case applied.
	Register(ctx context.Context, req *dto.NewUserRequest) (user *model.User, created bool, err error)
	All(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	users       repository.UserRepositoryInterface
	coordinator *cache.Coordinator
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepositoryInterface, coordinator *cache.Coordinator) UserService {
	return &UserServiceImpl{users: users, coordinator: coordinator}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.NewUserRequest) (*model.User, bool, error) {
	existing, err := s.users.FindByID(ctx, req.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	user := req.ToModel()
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, false, errors.Join(ErrConflict, err)
		}
		return nil, false, err
	}

	s.coordinator.Invalidate(cache.Request{AdminChanged: true})
	return user, true, nil
}

func (s *UserServiceImpl) All(ctx context.Context) ([]model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return notFound("user")
	}

	s.coordinator.Invalidate(cache.Request{AdminChanged: true})
	return nil
}
