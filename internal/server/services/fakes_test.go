package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focuskeeper/internal/common"
	"github.com/dmitrijs2005/focuskeeper/internal/dbx"
	"github.com/dmitrijs2005/focuskeeper/internal/server/config"
	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
	focusesrepo "github.com/dmitrijs2005/focuskeeper/internal/server/repositories/focuses"
	usersrepo "github.com/dmitrijs2005/focuskeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		PasswordHashCost:      bcrypt.MinCost,
	}
}

// memStore backs both fake repositories so that users and focuses stay
// consistent with each other the way the real tables do.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	focuses []*models.Focus
	clock   time.Time

	userCreateErr  error
	userLookupErr  error
	focusCreateErr error
	findRootErr    error
	findByIDErr    error
	childrenErr    error

	focusCreates int
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]*models.User{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type fakeUsersRepo struct{ s *memStore }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.userCreateErr != nil {
		return nil, f.s.userCreateErr
	}
	for _, existing := range f.s.users {
		if existing.UserName == u.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}
	out := *u
	out.ID = uuid.NewString()
	out.CreatedAt = f.s.tick()
	f.s.users[out.ID] = &out
	cp := out
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.userLookupErr != nil {
		return nil, f.s.userLookupErr
	}
	if u, ok := f.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

type fakeFocusesRepo struct{ s *memStore }

func (f *fakeFocusesRepo) Create(ctx context.Context, focus *models.Focus) (*models.Focus, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.focusCreates++
	if f.s.focusCreateErr != nil {
		return nil, f.s.focusCreateErr
	}
	if focus.ParentFocusID == nil {
		for _, n := range f.s.focuses {
			if n.UserID == focus.UserID && n.ParentFocusID == nil {
				return nil, common.ErrorAlreadyExists
			}
		}
	} else if f.find(*focus.ParentFocusID) == nil {
		return nil, common.ErrParentNotFound
	}
	out := *focus
	out.ID = uuid.NewString()
	out.CreatedAt = f.s.tick()
	out.Children = nil
	f.s.focuses = append(f.s.focuses, &out)
	cp := out
	return &cp, nil
}

func (f *fakeFocusesRepo) FindByID(ctx context.Context, id string) (*models.Focus, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.findByIDErr != nil {
		return nil, f.s.findByIDErr
	}
	if n := f.find(id); n != nil {
		cp := *n
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFocusesRepo) FindChildren(ctx context.Context, parentID string) ([]models.Focus, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.childrenErr != nil {
		return nil, f.s.childrenErr
	}
	out := []models.Focus{}
	for _, n := range f.s.focuses {
		if n.ParentFocusID != nil && *n.ParentFocusID == parentID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeFocusesRepo) FindRoot(ctx context.Context, userID string) (*models.Focus, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.findRootErr != nil {
		return nil, f.s.findRootErr
	}
	for _, n := range f.s.focuses {
		if n.UserID == userID && n.ParentFocusID == nil {
			cp := *n
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFocusesRepo) find(id string) *models.Focus {
	for _, n := range f.s.focuses {
		if n.ID == id {
			return n
		}
	}
	return nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return &fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Focuses(db dbx.DBTX) focusesrepo.Repository   { return &fakeFocusesRepo{m.s} }
