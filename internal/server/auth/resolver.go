package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserFinder looks a user up by ID.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Resolver turns a session cookie value into the user it belongs to.
type Resolver struct {
	tokens TokenVerifier
	users  UserFinder
	logger logging.Logger
}

func NewResolver(tokens TokenVerifier, users UserFinder, logger logging.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, logger: logger.With("module", "session_resolver")}
}

// Resolve returns the user identified by cookieValue, or nil when the
// request is unauthenticated for any reason: no cookie, a token that does
// not verify, an unknown subject, or a failing store. It never returns an
// error; pages decide for themselves whether a user is required.
func (r *Resolver) Resolve(ctx context.Context, cookieValue string) *models.User {
	if cookieValue == "" {
		return nil
	}

	claims, err := r.tokens.Verify(cookieValue)
	if err != nil {
		r.logger.Debug(ctx, "session token rejected", "error", err)
		return nil
	}

	user, err := r.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			r.logger.Warn(ctx, "session user lookup failed", "error", err)
		}
		return nil
	}

	return user
}
