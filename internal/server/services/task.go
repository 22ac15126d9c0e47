package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService manages the tasks of a single owner at a time. It never
// returns tasks belonging to anyone other than the given owner.
type TaskService struct {
	runner      dbx.Runner
	repomanager repomanager.RepositoryManager
}

func NewTaskService(runner dbx.Runner, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{runner: runner, repomanager: m}
}

// Create stores a new task for ownerID. A blank title yields
// common.ErrorValidation.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}

	t, err := s.repomanager.Tasks(s.runner.DB()).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return t, nil
}

// ListByOwner returns ownerID's tasks, oldest first.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks(s.runner.DB()).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return list, nil
}
