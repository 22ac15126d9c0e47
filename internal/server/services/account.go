// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login and session lookups.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// dummyPassword is hashed once to give unknown-email logins a digest to
// compare against.
const dummyPassword = "taskboard-dummy-password"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// AccountService provides account operations:
// - Register: create a user with a unique email
// - Login: check credentials and mint a session token
// - GetUserByID: look up the user behind a session
type AccountService struct {
	runner                      dbx.Runner
	repomanager                 repomanager.RepositoryManager
	hasher                      PasswordHasher
	tokens                      TokenIssuer
	accessTokenValidityDuration time.Duration
	dummyDigest                 string
}

// NewAccountService constructs an AccountService using repositories and server config.
// It hashes the dummy password up front, so it fails if the hasher does.
func NewAccountService(runner dbx.Runner, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, cfg *config.Config) (*AccountService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing dummy password: %w", err)
	}

	return &AccountService{
		runner:                      runner,
		repomanager:                 m,
		hasher:                      hasher,
		tokens:                      tokens,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		dummyDigest:                 dummy,
	}, nil
}

// Register creates a new user. An email that is already registered, either
// seen by the lookup or rejected by the store's unique constraint, yields
// common.ErrEmailTaken. Blank fields yield common.ErrorValidation.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, common.ErrorValidation
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	err = s.runner.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrEmailTaken
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err = repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: digest})
		if err != nil {
			if errors.Is(err, common.ErrEmailTaken) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password for email and returns a signed session token.
// Unknown emails and wrong passwords are indistinguishable: both return
// common.ErrInvalidCredentials after one hash comparison.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.runner.DB())
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetUserByID returns the user with id or common.ErrorNotFound.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.runner.DB()).GetUserByID(ctx, id)
}

// AccessTokenValidityDuration is the lifetime of tokens minted by Login.
func (s *AccountService) AccessTokenValidityDuration() time.Duration {
	return s.accessTokenValidityDuration
}
