package service

import (
	"context"
	"errors"

	userserrors "staynest/internal/users/errors"
	"staynest/internal/users/repository"
	"staynest/internal/users/validator"
	"staynest/pkg/auth"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/events"
	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/sanitizer"
	"staynest/pkg/validation"
)

type TokenIssuer interface {
	Issue(email, userID string) (string, error)
}

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    TokenIssuer
	events    events.Publisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	tokens TokenIssuer,
	publisher events.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	sanitizer.SanitizeRegister(req)

	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, validation.AppError("Invalid registration input", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.DuplicateEmail(req.Email)
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.log(ctx).Info("User registered successfully", "user_id", user.ID)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeUserRegistered,
		Key:     user.ID,
		ActorID: user.ID,
		Payload: map[string]any{"email": user.Email, "name": user.Name},
	})

	return user, nil
}

// Login reports unknown accounts and wrong passwords identically; only the
// log line tells them apart.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	sanitizer.SanitizeLogin(req)

	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, "", validation.AppError("Invalid login input", err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			s.log(ctx).Warn("Login failed", "reason", "unknown account")
			return nil, "", apperrors.InvalidCredentials()
		}
		return nil, "", apperrors.Internal("Failed to retrieve user", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log(ctx).Warn("Login failed", "reason", "password mismatch", "user_id", user.ID)
			return nil, "", apperrors.InvalidCredentials()
		}
		return nil, "", apperrors.Internal("Failed to verify password", err)
	}

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue session token", err)
	}

	s.log(ctx).Info("User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

// Profile returns nil, nil when the account behind a valid session no longer exists.
func (s *userService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, nil
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.cfg.Log)
}
