package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util/errorutil"
)

const taskCacheTTL = time.Minute

// TaskService coordinates task workflows. Lists are served through a
// cache-aside Redis layer keyed per user and invalidated on every write.
type TaskService struct {
	tasks  repository.TaskRepository
	cache  *persistence.Redis
	logger *zap.Logger
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title       string
	Description *string
}

// TaskUpdateInput describes task update payload.
type TaskUpdateInput struct {
	Title       string
	Description *string
	Completed   bool
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository, cache *persistence.Redis, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, cache: cache, logger: logger}
}

// CreateTask creates a task owned by the user.
func (s *TaskService) CreateTask(ctx context.Context, userID string, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, userID)
	return task, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	if cached, ok := s.cachedList(ctx, userID); ok {
		return cached, nil
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, userID, tasks)
	return tasks, nil
}

// GetTask fetches a single task scoped to the user.
func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, userID, id)
}

// UpdateTask replaces the mutable fields of a task.
func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, input TaskUpdateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	task, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	task.Title = title
	task.Description = input.Description
	task.Completed = input.Completed
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, userID)
	return task, nil
}

// CompleteTask toggles a task to completed.
func (s *TaskService) CompleteTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	task.Completed = true
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, userID)
	return task, nil
}

// DeleteTask removes a task owned by the user.
func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func taskCacheKey(userID string) string {
	return "tasks:" + userID
}

func (s *TaskService) cachedList(ctx context.Context, userID string) ([]domain.Task, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, taskCacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, false
	}
	return tasks, true
}

func (s *TaskService) storeList(ctx context.Context, userID string, tasks []domain.Task) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, taskCacheKey(userID), raw, taskCacheTTL).Err(); err != nil {
		s.logger.Debug("task cache set failed", zap.Error(err))
	}
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, taskCacheKey(userID)).Err(); err != nil {
		s.logger.Debug("task cache invalidation failed", zap.Error(err))
	}
}
