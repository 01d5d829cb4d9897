package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bord/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// tasksByID keeps preloaded tasks in id order.
func tasksByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Tasks", tasksByID).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// GetByName looks a board up by name, ignoring case. When several rows
// match, the oldest one wins.
func (r *BoardRepository) GetByName(ctx context.Context, name string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Tasks", tasksByID).
		Where("LOWER(name) = LOWER(?)", name).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Preload("Tasks", tasksByID).Order("id").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}
