package usecase

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/auth/dto"
	"github.com/fekuna/omnipos-backoffice/internal/auth/password"
	"github.com/fekuna/omnipos-backoffice/internal/auth/remember"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/validate"
	"go.uber.org/zap"
)

const (
	msgFillAllFields      = "please fill in all fields"
	msgPasswordMismatch   = "passwords do not match"
	msgAcceptTerms        = "please agree to the terms and conditions"
	msgInvalidEmail       = "please enter a valid email address"
	msgPasswordTooShort   = "password must be at least 8 characters long"
	msgUsernameTaken      = "username already exists"
	msgEmailTaken         = "email already exists"
	msgCreateFailed       = "failed to create account"
	msgLoginBlank         = "please enter both username and password"
	msgInvalidCredentials = "invalid username or password"
	msgLoginFailed        = "login failed"
)

type authUseCase struct {
	repo     auth.Repository
	hasher   password.Hasher
	remember *remember.File
	welcome  auth.WelcomeWriter
	logger   logger.ZapLogger
}

func NewAuthUseCase(repo auth.Repository, hasher password.Hasher, rem *remember.File, welcome auth.WelcomeWriter, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:     repo,
		hasher:   hasher,
		remember: rem,
		welcome:  welcome,
		logger:   log,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	const op = "auth.register"

	if msg := registrationProblem(validate.Struct(input)); msg != "" {
		return nil, apperror.Validation(op, msg)
	}

	taken, err := uc.repo.IsUsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, apperror.Store(op, msgCreateFailed, err)
	}
	if taken {
		return nil, apperror.Conflict(op, msgUsernameTaken, nil)
	}

	taken, err = uc.repo.IsEmailTaken(ctx, input.Email)
	if err != nil {
		return nil, apperror.Store(op, msgCreateFailed, err)
	}
	if taken {
		return nil, apperror.Conflict(op, msgEmailTaken, nil)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Store(op, msgCreateFailed, err)
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Role:         model.RoleUser,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict(op, msgCreateFailed, err)
		}
		uc.logger.Error("failed to create user", zap.String("username", input.Username), zap.Error(err))
		return nil, apperror.Store(op, msgCreateFailed, err)
	}

	uc.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	if uc.welcome != nil {
		if path, err := uc.welcome.Welcome(user.Username, user.Email); err != nil {
			uc.logger.Warn("failed to write welcome message", zap.String("username", user.Username), zap.Error(err))
		} else {
			uc.logger.Debug("welcome message written", zap.String("path", path))
		}
	}

	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.Identity, error) {
	const op = "auth.login"

	if err := validate.Struct(input); err != nil {
		return nil, apperror.Validation(op, msgLoginBlank)
	}

	user, err := uc.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		uc.logger.Error("failed to look up user", zap.Error(err))
		return nil, apperror.Store(op, msgLoginFailed, err)
	}

	// unknown user and wrong password are indistinguishable to the caller
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		uc.logger.Info("login rejected", zap.String("username", input.Username))
		return nil, apperror.Auth(op, msgInvalidCredentials)
	}

	uc.logger.Info("login accepted", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return user.Identity(), nil
}

func (uc *authUseCase) Remember(username string, shouldRemember bool) error {
	if uc.remember == nil {
		return nil
	}
	if err := uc.remember.Save(username, shouldRemember); err != nil {
		uc.logger.Warn("failed to update remembered username", zap.Error(err))
		return err
	}
	return nil
}

func (uc *authUseCase) RememberedUsername() (string, bool) {
	if uc.remember == nil {
		return "", false
	}
	name, ok, err := uc.remember.Load()
	if err != nil {
		uc.logger.Warn("failed to read remembered username", zap.Error(err))
		return "", false
	}
	return name, ok
}

// registrationProblem picks the message of the first failing check, in the
// order the form reports them: blanks, mismatch, terms, email, length.
func registrationProblem(err error) string {
	if err == nil {
		return ""
	}
	failed := validate.FailedTags(err)
	switch {
	case failed[validate.NotBlank]:
		return msgFillAllFields
	case failed["eqfield"]:
		return msgPasswordMismatch
	case failed["eq"]:
		return msgAcceptTerms
	case failed["contains"]:
		return msgInvalidEmail
	case failed["min"]:
		return msgPasswordTooShort
	default:
		return msgFillAllFields
	}
}
