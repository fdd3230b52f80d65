// Package services contains server-side business logic. This file implements
// UserService: registration, credential checks and session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/focuskeeper/internal/common"
	"github.com/dmitrijs2005/focuskeeper/internal/dbx"
	"github.com/dmitrijs2005/focuskeeper/internal/server/auth"
	"github.com/dmitrijs2005/focuskeeper/internal/server/config"
	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/repomanager"
)

const (
	maxUserNameLength = 64

	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72
)

// Session is what a successful register or login hands back to the client.
type Session struct {
	User   *models.User
	RootID string
	Token  string
}

// UserService provides authentication-related operations.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                *auth.PasswordHasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                auth.NewPasswordHasher(cfg.PasswordHashCost),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Create stores a new user together with its root focus. A taken username
// yields common.ErrDuplicateUsername and leaves the existing user untouched.
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	user, _, err := s.create(ctx, username, password)
	return user, err
}

// Authenticate returns the user whose stored hash matches password.
// It fails with common.ErrUserNotFound or common.ErrPasswordMismatch.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrPasswordMismatch
	}

	return user, nil
}

// IssueToken signs a session token carrying the user's id and root focus id.
func (s *UserService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	root, err := s.resolveRoot(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return s.generateToken(user.ID, root.ID)
}

// Register creates the user and signs them in.
func (s *UserService) Register(ctx context.Context, username, password string) (*Session, error) {
	user, root, err := s.create(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID, root.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, RootID: root.ID, Token: token}, nil
}

// Login authenticates the user and issues a fresh session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	root, err := s.resolveRoot(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID, root.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, RootID: root.ID, Token: token}, nil
}

// --- helpers below ---

func (s *UserService) create(ctx context.Context, username, password string) (*models.User, *models.Focus, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	var (
		user *models.User
		root *models.Focus
	)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrDuplicateUsername
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		r, err := s.repomanager.Focuses(tx).Create(ctx, &models.Focus{UserID: u.ID, Name: common.RootFocusName})
		if err != nil {
			return fmt.Errorf("error creating root focus: %w", err)
		}

		user, root = u, r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return user, root, nil
}

// resolveRoot finds the user's root focus, creating it for accounts that
// predate root creation at registration.
func (s *UserService) resolveRoot(ctx context.Context, userID string) (*models.Focus, error) {
	root, err := s.repomanager.Focuses(s.db).FindRoot(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		root, err = dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Focus, error) {
			return ensureRoot(ctx, s.repomanager.Focuses(tx), userID)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving root focus: %w", err)
	}
	return root, nil
}

func (s *UserService) generateToken(userID, rootID string) (string, error) {
	token, err := auth.GenerateToken(userID, rootID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

func validateCredentials(username, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	case !isStorableText(username):
		return fmt.Errorf("%w: username must be valid UTF-8 without NUL bytes", common.ErrorValidation)
	case utf8.RuneCountInString(username) > maxUserNameLength:
		return fmt.Errorf("%w: username must be at most %d characters", common.ErrorValidation, maxUserNameLength)
	case password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	case len(password) > maxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxPasswordBytes)
	}
	return nil
}

// isStorableText reports whether s can be stored in a PostgreSQL text column.
func isStorableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
