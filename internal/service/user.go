package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UserAdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, q model.ListUsersQuery) ([]model.User, int64, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	users  UserAdminStore
	logger *zerolog.Logger
}

func NewUserService(users UserAdminStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	items, total, err := s.users.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateRole refuses to let admins demote themselves, so the last admin
// cannot lock everyone out.
func (s *UserService) UpdateRole(ctx context.Context, actorID uuid.UUID, req *model.UpdateUserRoleRequest) (*model.User, error) {
	id := req.UUID()
	if id == actorID && req.Role != model.RoleAdmin {
		return nil, errs.NewBadRequestError("You cannot change your own role", true, nil, nil, nil)
	}
	user, err := s.users.UpdateRole(ctx, id, req.Role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("user_id", id.String()).
		Str("role", string(req.Role)).
		Str("actor_id", actorID.String()).
		Msg("user role changed")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if id == actorID {
		return errs.NewBadRequestError("You cannot delete your own account", true, nil, nil, nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Str("actor_id", actorID.String()).Msg("user deleted")
	return nil
}
