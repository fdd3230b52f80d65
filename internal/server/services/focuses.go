package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/focuskeeper/internal/common"
	"github.com/dmitrijs2005/focuskeeper/internal/dbx"
	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/focuses"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxFocusNameLength = 255

// FocusService reads and grows a user's focus tree. Every operation is
// scoped to the calling user: nodes owned by someone else behave as if they
// did not exist.
type FocusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFocusService(db *sql.DB, m repomanager.RepositoryManager) *FocusService {
	return &FocusService{db: db, repomanager: m}
}

// GetRoot returns the user's root focus with its immediate children. A
// missing root is created on the spot.
func (s *FocusService) GetRoot(ctx context.Context, userID string) (*models.Focus, error) {
	repo := s.repomanager.Focuses(s.db)

	root, err := repo.FindRoot(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		if err := s.requireUser(ctx, userID); err != nil {
			return nil, err
		}
		root, err = dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Focus, error) {
			return ensureRoot(ctx, s.repomanager.Focuses(tx), userID)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("error searching root focus: %w", err)
	}

	return s.withChildren(ctx, repo, root)
}

// Get returns the focus with its immediate children, or
// common.ErrFocusNotFound when it does not exist in the user's tree.
func (s *FocusService) Get(ctx context.Context, focusID, userID string) (*models.Focus, error) {
	repo := s.repomanager.Focuses(s.db)

	focus, err := s.findOwned(ctx, repo, focusID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrFocusNotFound
		}
		return nil, err
	}

	return s.withChildren(ctx, repo, focus)
}

// Create adds a child named name under parentFocusID. The parent must belong
// to the user, otherwise common.ErrParentNotFound is returned and nothing is
// written.
func (s *FocusService) Create(ctx context.Context, name, parentFocusID, userID string) (*models.Focus, error) {
	name = strings.TrimSpace(name)
	if err := validateFocusName(name); err != nil {
		return nil, err
	}

	repo := s.repomanager.Focuses(s.db)

	parent, err := s.findOwned(ctx, repo, parentFocusID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrParentNotFound
		}
		return nil, err
	}

	focus, err := repo.Create(ctx, &models.Focus{
		UserID:        userID,
		ParentFocusID: &parent.ID,
		Name:          name,
	})
	if err != nil {
		if errors.Is(err, common.ErrParentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating focus: %w", err)
	}

	focus.Children = []models.Focus{}
	return focus, nil
}

// Update is not supported yet.
func (s *FocusService) Update(ctx context.Context, focusID, name, userID string) (*models.Focus, error) {
	return nil, common.ErrNotImplemented
}

// Delete is not supported yet; whether children cascade is undecided.
func (s *FocusService) Delete(ctx context.Context, focusID, userID string) error {
	return common.ErrNotImplemented
}

// --- helpers below ---

func (s *FocusService) findOwned(ctx context.Context, repo focuses.Repository, focusID, userID string) (*models.Focus, error) {
	if _, err := uuid.Parse(focusID); err != nil {
		return nil, common.ErrorNotFound
	}

	focus, err := repo.FindByID(ctx, focusID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching focus: %w", err)
	}

	if focus.UserID != userID {
		return nil, common.ErrorNotFound
	}

	return focus, nil
}

// requireUser fails with common.ErrUserNotFound when the account behind a
// still-valid token no longer exists.
func (s *FocusService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error searching user: %w", err)
	}
	return nil
}

func (s *FocusService) withChildren(ctx context.Context, repo focuses.Repository, focus *models.Focus) (*models.Focus, error) {
	children, err := repo.FindChildren(ctx, focus.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing children: %w", err)
	}
	if children == nil {
		children = []models.Focus{}
	}
	focus.Children = children
	return focus, nil
}

// ensureRoot returns the user's root, inserting it when absent. Losing the
// insert race to a concurrent request is resolved by re-reading.
func ensureRoot(ctx context.Context, repo focuses.Repository, userID string) (*models.Focus, error) {
	root, err := repo.FindRoot(ctx, userID)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	root, err = repo.Create(ctx, &models.Focus{UserID: userID, Name: common.RootFocusName})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return repo.FindRoot(ctx, userID)
	}
	return root, err
}

func validateFocusName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	case !isStorableText(name):
		return fmt.Errorf("%w: name must be valid UTF-8 without NUL bytes", common.ErrorValidation)
	case utf8.RuneCountInString(name) > maxFocusNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", common.ErrorValidation, maxFocusNameLength)
	}
	return nil
}
