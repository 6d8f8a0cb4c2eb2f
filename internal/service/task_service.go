package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Task statuses.
const (
	TaskStatusRunning   = "running"
	TaskStatusDone      = "done"
	TaskStatusError     = "error"
	TaskStatusCancelled = "cancelled"
)

// TaskResult summarizes a finished background run. Re-analysis fills
// Processed, Translated and Relabeled; CSV import fills Processed and
// Skipped. Failed counts units that errored either way.
type TaskResult struct {
	Processed  int
	Translated int
	Relabeled  int
	Skipped    int
	Failed     int
}

// Task is a snapshot of a background run. Item names the unit of work in
// flight, such as a comment snippet, and is cleared on terminal states.
type Task struct {
	ID      string
	Status  string
	Total   int
	Current int
	Item    string
	Error   string
	Result  *TaskResult
}

// TaskService tracks a single background run at a time. Starting a new run
// cancels the context handed out for the previous one.
type TaskService interface {
	Start(total int) (string, context.Context)
	Update(current int, item string)
	Get() *Task
	Complete(result TaskResult)
	Fail(err error)
	Cancel() bool
}

type taskService struct {
	mu     sync.Mutex
	task   *Task
	cancel context.CancelFunc
}

func NewTaskService() TaskService {
	return &taskService{}
}

func (s *taskService) Start(total int) (string, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A new run supersedes whatever was in flight.
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.task = &Task{
		ID:     uuid.NewString(),
		Status: TaskStatusRunning,
		Total:  total,
	}
	return s.task.ID, ctx
}

func (s *taskService) Update(current int, item string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil || s.task.Status != TaskStatusRunning {
		return
	}
	s.task.Current = current
	s.task.Item = item
}

func (s *taskService) Get() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return nil
	}
	snapshot := *s.task
	if s.task.Result != nil {
		result := *s.task.Result
		snapshot.Result = &result
	}
	return &snapshot
}

func (s *taskService) Complete(result TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil || s.task.Status != TaskStatusRunning {
		return
	}
	s.task.Status = TaskStatusDone
	s.task.Item = ""
	s.task.Result = &result
}

func (s *taskService) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil || s.task.Status != TaskStatusRunning {
		return
	}
	s.task.Status = TaskStatusError
	s.task.Item = ""
	if err != nil {
		s.task.Error = err.Error()
	}
}

func (s *taskService) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil || s.task.Status != TaskStatusRunning {
		return false
	}
	s.task.Status = TaskStatusCancelled
	s.task.Item = ""
	if s.cancel != nil {
		s.cancel()
	}
	return true
}
