// Package engine holds the rules of bord: how boards are found or created,
// how tasks are created and changed, when empty boards go away, and how the
// whole store is rendered as plain text.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"bord/internal/model"
	"bord/internal/repository"
)

var (
	// ErrPriorityOutOfRange is returned when a priority is not 1, 2 or 3.
	ErrPriorityOutOfRange = errors.New("priority out of range")

	// ErrUnknownTaskID is returned by mutators when no task has the given id.
	ErrUnknownTaskID = errors.New("unknown task id")
)

type Engine struct {
	store        repository.Store
	defaultBoard string
}

func New(store repository.Store, defaultBoard string) *Engine {
	return &Engine{store: store, defaultBoard: defaultBoard}
}

// ValidatePriority rejects anything outside the three priority tiers.
func ValidatePriority(p int) error {
	if !model.Priority(p).Valid() {
		return fmt.Errorf("%w: %d", ErrPriorityOutOfRange, p)
	}
	return nil
}

// DefaultBoard returns the default board, creating it on first use.
func (e *Engine) DefaultBoard(ctx context.Context) (*model.Board, error) {
	return e.ResolveBoard(ctx, e.defaultBoard)
}

// ResolveBoardByID returns the board with the given id, or the default
// board when there is none.
func (e *Engine) ResolveBoardByID(ctx context.Context, id uint) (*model.Board, error) {
	board, err := e.store.GetBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", id, err)
	}
	if board == nil {
		return e.DefaultBoard(ctx)
	}
	return board, nil
}

// ResolveBoard finds a board by name, ignoring case. An unknown name creates
// a new board spelled exactly as given; an empty name means the default board.
func (e *Engine) ResolveBoard(ctx context.Context, name string) (*model.Board, error) {
	if name == "" {
		name = e.defaultBoard
	}

	board, err := e.store.FindBoardByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find board %q: %w", name, err)
	}
	if board != nil {
		return board, nil
	}

	board = &model.Board{Name: name, Tasks: []model.Task{}}
	if err := e.store.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("create board %q: %w", name, err)
	}
	log.WithFields(log.Fields{"board": board.Name, "id": board.ID}).Debug("board created")

	return board, nil
}

// CreateTask adds an open task to the named board, or to the default board
// when boardName is empty. The priority is checked before anything else.
func (e *Engine) CreateTask(ctx context.Context, description string, priority int, boardName string) (*model.Task, error) {
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	board, err := e.ResolveBoard(ctx, boardName)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Description: description,
		Priority:    model.Priority(priority),
		IsCompleted: false,
		BoardID:     board.ID,
	}
	if err := e.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	board.Tasks = append(board.Tasks, *task)
	task.Board = board
	log.WithFields(log.Fields{
		"id":       task.ID,
		"board":    board.Name,
		"priority": task.Priority.String(),
	}).Debug("task created")

	return task, nil
}

// GetTask returns nil, nil when the id is unknown.
func (e *Engine) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := e.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// mutate loads a task, applies fn and writes the result back.
func (e *Engine) mutate(ctx context.Context, id uint, fn func(*model.Task) error) (*model.Task, error) {
	task, err := e.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTaskID, id)
	}

	if err := fn(task); err != nil {
		return nil, err
	}
	if err := e.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTaskID, id)
		}
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

// ToggleComplete flips the completion flag of a task.
func (e *Engine) ToggleComplete(ctx context.Context, id uint) (*model.Task, error) {
	return e.mutate(ctx, id, func(t *model.Task) error {
		t.IsCompleted = !t.IsCompleted
		return nil
	})
}

func (e *Engine) SetPriority(ctx context.Context, id uint, priority int) (*model.Task, error) {
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	return e.mutate(ctx, id, func(t *model.Task) error {
		t.Priority = model.Priority(priority)
		return nil
	})
}

// SetDescription replaces the description verbatim.
func (e *Engine) SetDescription(ctx context.Context, id uint, description string) (*model.Task, error) {
	return e.mutate(ctx, id, func(t *model.Task) error {
		t.Description = description
		return nil
	})
}

// MoveTask reassigns a task to the named board, creating the board if needed.
// The task must exist before any board is created.
func (e *Engine) MoveTask(ctx context.Context, id uint, boardName string) (*model.Task, error) {
	var dest *model.Board
	task, err := e.mutate(ctx, id, func(t *model.Task) error {
		board, err := e.ResolveBoard(ctx, boardName)
		if err != nil {
			return err
		}
		dest = board
		t.BoardID = board.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// dest was loaded before the update; it may already hold the task.
	dest.Tasks = slices.DeleteFunc(dest.Tasks, func(t model.Task) bool { return t.ID == task.ID })
	dest.Tasks = append(dest.Tasks, *task)
	task.Board = dest
	return task, nil
}

// DeleteTask removes a task and returns what was removed. A board left
// empty is only dropped by CleanupEmptyBoards.
func (e *Engine) DeleteTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := e.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTaskID, id)
	}

	if err := e.store.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTaskID, id)
		}
		return nil, fmt.Errorf("delete task %d: %w", id, err)
	}
	return task, nil
}

func (e *Engine) isDefault(board *model.Board) bool {
	return board.HasName(e.defaultBoard)
}

// CleanupEmptyBoards deletes every board without tasks except the default
// board, and returns the boards it removed.
func (e *Engine) CleanupEmptyBoards(ctx context.Context) ([]model.Board, error) {
	boards, err := e.store.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	var removed []model.Board
	for i := range boards {
		board := &boards[i]
		if len(board.Tasks) > 0 || e.isDefault(board) {
			continue
		}
		if err := e.store.DeleteBoard(ctx, board.ID); err != nil {
			return removed, fmt.Errorf("delete board %q: %w", board.Name, err)
		}
		log.WithField("board", board.Name).Debug("empty board removed")
		removed = append(removed, *board)
	}
	return removed, nil
}
