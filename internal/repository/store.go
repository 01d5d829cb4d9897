package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"bord/internal/config"
	"bord/internal/model"
)

// Store is the record store the board engine runs on. Every mutating call
// is committed before it returns.
type Store interface {
	CreateBoard(ctx context.Context, board *model.Board) error
	// GetBoard returns nil, nil when no board has the given id.
	GetBoard(ctx context.Context, id uint) (*model.Board, error)
	// FindBoardByName matches case-insensitively and returns nil, nil on a miss.
	FindBoardByName(ctx context.Context, name string) (*model.Board, error)
	// ListBoards returns every board ordered by id, with its tasks loaded.
	ListBoards(ctx context.Context) ([]model.Board, error)
	DeleteBoard(ctx context.Context, id uint) error

	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id uint) error
	// MaxTaskID returns the highest task id in the store, or 0 when empty.
	MaxTaskID(ctx context.Context) (uint, error)

	Close() error
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Open returns the store selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Storage))
	log.WithField("backend", backend).Debug("opening store")

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.DataFile)
	case BackendPostgres:
		return OpenPostgres(cfg)
	case BackendRedis:
		return OpenRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage)
	}
}

// sortTasks orders tasks by ascending id in place.
func sortTasks(tasks []model.Task) {
	slices.SortFunc(tasks, func(a, b model.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
