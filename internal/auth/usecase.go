package auth

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/auth/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input *dto.LoginInput) (*model.Identity, error)

	Remember(username string, remember bool) error
	RememberedUsername() (string, bool)
}

// WelcomeWriter produces the onboarding note for a new account.
type WelcomeWriter interface {
	Welcome(username, email string) (string, error)
}
