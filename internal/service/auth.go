package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/lib/token"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/repository"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type TokenManager interface {
	Issue(userID uuid.UUID, role string) (string, time.Time, error)
	Parse(raw string) (uuid.UUID, string, error)
}

// Directory looks up a user at the external identity provider.
type Directory interface {
	Lookup(ctx context.Context, externalID string) (name, email string, err error)
}

type AuthService struct {
	users     UserStore
	tokens    TokenManager
	directory Directory
	jobs      job.Enqueuer
	logger    *zerolog.Logger
	cost      int
}

// NewAuthService builds the service. tokens is nil with the clerk
// provider, directory is nil with the local one.
func NewAuthService(users UserStore, tokens TokenManager, directory Directory, jobs job.Enqueuer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		directory: directory,
		jobs:      jobs,
		logger:    logger,
		cost:      bcrypt.DefaultCost,
	}
}

func errLocalAuthDisabled() error {
	return errs.NewBadRequestError("Password authentication is disabled, sign in through the identity provider", true, errs.Ptr("LOCAL_AUTH_DISABLED"), nil, nil)
}

func errInvalidCredentials() error {
	return errs.NewUnauthorizedErrorWithCode("Invalid email or password", true, errs.CodeInvalidCredentials)
}

func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if s.tokens == nil {
		return nil, errLocalAuthDisabled()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashed,
		Phone:        req.Phone,
		Role:         model.RoleUser,
	}
	// A duplicate email fails on users_email_key and surfaces as USER_ALREADY_EXISTS.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewWelcomeEmailTask(user.Email, user.Name)
	})

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return s.respond(user)
}

func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if s.tokens == nil {
		return nil, errLocalAuthDisabled()
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, errInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials()
	}
	return s.respond(user)
}

func (s *AuthService) respond(user *model.User) (*model.AuthResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		User:      user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	if s.tokens == nil {
		return errLocalAuthDisabled()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "current_password", Error: "is incorrect"},
		}, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// Authenticate verifies a locally issued bearer token and loads its
// subject. The stored role wins over the role in the token, and a user
// that no longer exists is rejected.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	if s.tokens == nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	userID, _, err := s.tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, errs.NewUnauthorizedErrorWithCode("Token expired", true, errs.CodeTokenExpired)
		}
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NewUnauthorizedError("Unauthorized", false)
		}
		return nil, err
	}
	return user, nil
}

// ResolveExternalUser maps an identity provider subject to a local user,
// creating the user on first sight.
func (s *AuthService) ResolveExternalUser(ctx context.Context, externalID string) (*model.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}
	if s.directory == nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	name, email, err := s.directory.Lookup(ctx, externalID)
	if err != nil {
		return nil, err
	}

	user = &model.User{
		Name:       name,
		Email:      model.NormalizeEmail(email),
		Role:       model.RoleUser,
		ExternalID: &externalID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewWelcomeEmailTask(user.Email, user.Name)
	})
	s.logger.Info().Str("user_id", user.ID.String()).Str("external_id", externalID).Msg("provisioned external user")
	return user, nil
}
