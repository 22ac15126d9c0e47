package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertQuery = regexp.QuoteMeta(`INSERT INTO tasks (id, owner_id, title, description)`)
	listQuery   = `(?s)SELECT id, owner_id, title, description, created_at FROM tasks\s+WHERE owner_id = \$1\s+ORDER BY created_at, id`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQuery).
		WithArgs("t1", "u1", "write report", "by friday").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.Task{ID: "t1", OwnerID: "u1", Title: "write report", Description: "by friday"})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("t1", "u1", "x", "").
		WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Task{ID: "t1", OwnerID: "u1", Title: "x"})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*fk violation`, err.Error())
}

func TestListByOwner_ReturnsRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "created_at"}).
		AddRow("t1", "u1", "first", "", t0).
		AddRow("t2", "u1", "second", "details", t0.Add(time.Minute))
	mock.ExpectQuery(listQuery).WithArgs("u1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "details", got[1].Description)
	for _, task := range got {
		assert.Equal(t, "u1", task.OwnerID)
	}
}

func TestListByOwner_EmptyIsNonNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("u9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "created_at"}))

	got, err := repo.ListByOwner(context.Background(), "u9")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByOwner_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("u1").WillReturnError(errors.New("boom"))

	_, err := repo.ListByOwner(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select tasks")
}

func TestListByOwner_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "created_at"}).
		AddRow("t1", "u1", "first", "", time.Now()).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(listQuery).WithArgs("u1").WillReturnRows(rows)

	_, err := repo.ListByOwner(context.Background(), "u1")
	require.Error(t, err)
}
