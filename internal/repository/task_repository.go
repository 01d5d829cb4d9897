package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bord/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Update writes every mutable column of an existing task. Zero values
// (an unchecked task) are written too.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"description":  task.Description,
			"priority":     task.Priority,
			"is_completed": task.IsCompleted,
			"board_id":     task.BoardID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetMaxID returns the highest task id, or 0 for an empty table
func (r *TaskRepository) GetMaxID(ctx context.Context) (uint, error) {
	var maxID struct {
		Max uint
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(id), 0) as max").
		Scan(&maxID).Error

	return maxID.Max, err
}
