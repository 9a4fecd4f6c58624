// Package model contains the GORM persistence models, kept separate from the
// pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountModel mirrors the 'users' table: one row per account, local or
// federated. Password and Secret are pointers because both columns are
// nullable; a federated account has no password row value at all.
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  *string   `gorm:"type:varchar(255)"`
	Secret    *string   `gorm:"type:text"`
	Provider  string    `gorm:"type:varchar(32);not null;default:local;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the immutable account ID at creation time.
func (m *AccountModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
