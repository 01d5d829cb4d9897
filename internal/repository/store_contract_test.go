package repository_test

import (
	"context"
	"testing"

	"bord/internal/model"
	"bord/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("BoardLifecycle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		work := &model.Board{Name: "Work"}
		require.NoError(t, store.CreateBoard(ctx, work))
		home := &model.Board{Name: "Home"}
		require.NoError(t, store.CreateBoard(ctx, home))
		assert.NotZero(t, work.ID)
		assert.Greater(t, home.ID, work.ID)

		found, err := store.GetBoard(ctx, work.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Work", found.Name)
		assert.Empty(t, found.Tasks)

		byName, err := store.FindBoardByName(ctx, "wORK")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, work.ID, byName.ID)

		boards, err := store.ListBoards(ctx)
		require.NoError(t, err)
		require.Len(t, boards, 2)
		assert.Equal(t, "Work", boards[0].Name)
		assert.Equal(t, "Home", boards[1].Name)

		require.NoError(t, store.DeleteBoard(ctx, work.ID))
		gone, err := store.GetBoard(ctx, work.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
		assert.ErrorIs(t, store.DeleteBoard(ctx, work.ID), repository.ErrBoardNotFound)
	})

	t.Run("MissingBoard", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		board, err := store.GetBoard(ctx, 99)
		assert.NoError(t, err)
		assert.Nil(t, board)

		board, err = store.FindBoardByName(ctx, "nothing")
		assert.NoError(t, err)
		assert.Nil(t, board)
	})

	t.Run("TaskLifecycle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		board := &model.Board{Name: "Tasks"}
		require.NoError(t, store.CreateBoard(ctx, board))
		other := &model.Board{Name: "Other"}
		require.NoError(t, store.CreateBoard(ctx, other))

		first := &model.Task{Description: "first", Priority: model.PriorityLow, BoardID: board.ID}
		require.NoError(t, store.CreateTask(ctx, first))
		second := &model.Task{Description: "second", Priority: model.PriorityHigh, BoardID: board.ID}
		require.NoError(t, store.CreateTask(ctx, second))
		assert.Greater(t, second.ID, first.ID)

		maxID, err := store.MaxTaskID(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, maxID)

		loaded, err := store.GetBoard(ctx, board.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Tasks, 2)
		assert.Equal(t, first.ID, loaded.Tasks[0].ID)
		assert.Equal(t, second.ID, loaded.Tasks[1].ID)

		// Completing and then un-completing must both be written.
		first.IsCompleted = true
		first.Description = "first, done"
		first.BoardID = other.ID
		require.NoError(t, store.UpdateTask(ctx, first))
		got, err := store.GetTask(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted)
		assert.Equal(t, "first, done", got.Description)
		assert.Equal(t, other.ID, got.BoardID)

		got.IsCompleted = false
		require.NoError(t, store.UpdateTask(ctx, got))
		got, err = store.GetTask(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, got.IsCompleted)

		boards, err := store.ListBoards(ctx)
		require.NoError(t, err)
		require.Len(t, boards, 2)
		assert.Len(t, boards[0].Tasks, 1)
		assert.Len(t, boards[1].Tasks, 1)

		require.NoError(t, store.DeleteTask(ctx, second.ID))
		_, err = store.GetTask(ctx, second.ID)
		assert.ErrorIs(t, err, repository.ErrTaskNotFound)
		assert.ErrorIs(t, store.DeleteTask(ctx, second.ID), repository.ErrTaskNotFound)
	})

	t.Run("MissingTask", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.GetTask(ctx, 1)
		assert.ErrorIs(t, err, repository.ErrTaskNotFound)

		err = store.UpdateTask(ctx, &model.Task{ID: 1, Description: "ghost"})
		assert.ErrorIs(t, err, repository.ErrTaskNotFound)

		maxID, err := store.MaxTaskID(ctx)
		require.NoError(t, err)
		assert.Zero(t, maxID)
	})

	t.Run("TaskNeedsBoard", func(t *testing.T) {
		store := newStore(t)

		err := store.CreateTask(context.Background(), &model.Task{Description: "orphan", Priority: model.PriorityLow, BoardID: 7})

		assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	})
}
