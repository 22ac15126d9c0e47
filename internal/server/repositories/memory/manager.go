// Package memory keeps users and tasks in process memory. It backs the
// server when started with the "memory" DSN and serves as the store in
// tests that exercise whole request flows. Data does not survive a restart.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
	"github.com/google/uuid"
)

// DSN selects the in-memory store instead of PostgreSQL.
const DSN = "memory"

// Store holds all records. The zero value is not usable; call NewStore.
type Store struct {
	mu    sync.RWMutex
	users map[string]*models.User
	email map[string]string
	tasks []*models.Task
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*models.User),
		email: make(map[string]string),
		now:   time.Now,
	}
}

// Manager returns a RepositoryManager over the store. The DBTX passed to
// the factories is ignored.
func (s *Store) Manager() repomanager.RepositoryManager { return manager{s: s} }

// Runner returns a dbx.Runner whose transactions simply run fn. Each
// repository call is atomic on its own; uniqueness is enforced on insert.
func (s *Store) Runner() dbx.Runner { return runner{} }

type manager struct{ s *Store }

func (m manager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m manager) Users(dbx.DBTX) users.Repository              { return userRepo{m.s} }
func (m manager) Tasks(dbx.DBTX) tasks.Repository              { return taskRepo{m.s} }

type runner struct{}

func (runner) DB() dbx.DBTX { return nil }

func (runner) InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.email[user.Email]; taken {
		return nil, common.ErrEmailTaken
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.s.now()
	stored := *user
	r.s.users[user.ID] = &stored
	r.s.email[user.Email] = user.ID
	return user, nil
}

func (r userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.email[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r userRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *stored
	return &u, nil
}

type taskRepo struct{ s *Store }

func (r taskRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[task.OwnerID]; !ok {
		return nil, common.ErrorNotFound
	}
	task.CreatedAt = r.s.now()
	stored := *task
	r.s.tasks = append(r.s.tasks, &stored)
	return task, nil
}

func (r taskRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if t.OwnerID == ownerID {
			c := *t
			result = append(result, &c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}
