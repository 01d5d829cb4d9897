package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bord/internal/config"
	"bord/internal/model"
)

// SQLStore is the relational Store, backed by gorm.
type SQLStore struct {
	db     *gorm.DB
	boards *BoardRepository
	tasks  *TaskRepository
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		boards: NewBoardRepository(db),
		tasks:  NewTaskRepository(db),
	}
}

// OpenPostgres connects to the database described by cfg and migrates the
// board and task tables.
func OpenPostgres(cfg *config.Config) (*SQLStore, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if log.IsLevelEnabled(log.DebugLevel) {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := db.AutoMigrate(&model.Board{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Debug("✅ Connected to database")

	return NewSQLStore(db), nil
}

func (s *SQLStore) CreateBoard(ctx context.Context, board *model.Board) error {
	return s.boards.Create(ctx, board)
}

func (s *SQLStore) GetBoard(ctx context.Context, id uint) (*model.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *SQLStore) FindBoardByName(ctx context.Context, name string) (*model.Board, error) {
	return s.boards.GetByName(ctx, name)
}

func (s *SQLStore) ListBoards(ctx context.Context) ([]model.Board, error) {
	return s.boards.GetAll(ctx)
}

func (s *SQLStore) DeleteBoard(ctx context.Context, id uint) error {
	return s.boards.Delete(ctx, id)
}

func (s *SQLStore) CreateTask(ctx context.Context, task *model.Task) error {
	return s.tasks.Create(ctx, task)
}

func (s *SQLStore) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *SQLStore) UpdateTask(ctx context.Context, task *model.Task) error {
	return s.tasks.Update(ctx, task)
}

func (s *SQLStore) DeleteTask(ctx context.Context, id uint) error {
	return s.tasks.Delete(ctx, id)
}

func (s *SQLStore) MaxTaskID(ctx context.Context) (uint, error) {
	return s.tasks.GetMaxID(ctx)
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
