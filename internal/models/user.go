package models

import (
	"time"
)

// User is a tester identity. Names are unique and compared case-sensitively
// as stored.
type User struct {
	ID        string       `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;size:255;not null" json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	Results   []TestResult `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
