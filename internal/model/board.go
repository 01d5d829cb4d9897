package model

import "strings"

type Board struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;index" json:"name"`

	Tasks []Task `gorm:"foreignKey:BoardID" json:"tasks,omitempty"`
}

// HasName reports whether the board answers to name. Board names are
// compared without regard to case.
func (b *Board) HasName(name string) bool {
	return strings.EqualFold(b.Name, name)
}
