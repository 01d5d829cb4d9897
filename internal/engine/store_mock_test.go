package engine_test

import (
	"context"
	"errors"
	"testing"

	"bord/internal/engine"
	"bord/internal/model"
	"bord/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore is a repository.Store driven by testify expectations.
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) CreateBoard(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockStore) GetBoard(ctx context.Context, id uint) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockStore) FindBoardByName(ctx context.Context, name string) (*model.Board, error) {
	args := m.Called(ctx, name)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockStore) ListBoards(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockStore) DeleteBoard(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateTask(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockStore) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockStore) UpdateTask(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockStore) DeleteTask(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) MaxTaskID(ctx context.Context) (uint, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func TestCreateTask_InvalidPriorityTouchesNothing(t *testing.T) {
	store := new(MockStore)
	eng := engine.New(store, "Tasks")

	_, err := eng.CreateTask(context.Background(), "x", 4, "Work")

	assert.ErrorIs(t, err, engine.ErrPriorityOutOfRange)
	store.AssertNotCalled(t, "FindBoardByName", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestCreateTask_StorageFailurePropagates(t *testing.T) {
	store := new(MockStore)
	eng := engine.New(store, "Tasks")
	storageErr := errors.New("connection refused")

	store.On("FindBoardByName", mock.Anything, "Tasks").Return(&model.Board{ID: 1, Name: "Tasks"}, nil)
	store.On("CreateTask", mock.Anything, mock.AnythingOfType("*model.Task")).Return(storageErr)

	_, err := eng.CreateTask(context.Background(), "x", 1, "")

	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, engine.ErrPriorityOutOfRange)
	store.AssertExpectations(t)
}

func TestToggleComplete_NotFoundDoesNotWrite(t *testing.T) {
	store := new(MockStore)
	eng := engine.New(store, "Tasks")

	store.On("GetTask", mock.Anything, uint(9)).Return(nil, repository.ErrTaskNotFound)

	_, err := eng.ToggleComplete(context.Background(), 9)

	assert.ErrorIs(t, err, engine.ErrUnknownTaskID)
	store.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestGetTask_StorageFailureIsNotAbsence(t *testing.T) {
	store := new(MockStore)
	eng := engine.New(store, "Tasks")
	storageErr := errors.New("timeout")

	store.On("GetTask", mock.Anything, uint(3)).Return(nil, storageErr)

	task, err := eng.GetTask(context.Background(), 3)

	assert.Nil(t, task)
	assert.ErrorIs(t, err, storageErr)
}

func TestCleanupEmptyBoards_StopsOnDeleteError(t *testing.T) {
	store := new(MockStore)
	eng := engine.New(store, "Tasks")
	storageErr := errors.New("disk full")

	store.On("ListBoards", mock.Anything).Return([]model.Board{
		{ID: 1, Name: "Tasks"},
		{ID: 2, Name: "Empty"},
	}, nil)
	store.On("DeleteBoard", mock.Anything, uint(2)).Return(storageErr)

	removed, err := eng.CleanupEmptyBoards(context.Background())

	assert.ErrorIs(t, err, storageErr)
	assert.Empty(t, removed)
	store.AssertExpectations(t)
}
