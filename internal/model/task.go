package model

type Task struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Description string   `gorm:"not null" json:"description"`
	Priority    Priority `gorm:"not null" json:"priority"`
	IsCompleted bool     `gorm:"not null" json:"is_completed"`
	BoardID     uint     `gorm:"not null;index" json:"board_id"`

	// Board is filled in by the engine when the owning board is known.
	// It is never persisted.
	Board *Board `gorm:"-" json:"-"`
}
