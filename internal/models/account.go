package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Account is a registered user. Conversations themselves live in the
// encrypted blob store; the account row only tracks which conversation ids
// belong to the user.
type Account struct {
	ID           string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username     string `gorm:"column:username;type:text;uniqueIndex" json:"username"`
	Email        string `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:text" json:"-"`

	ResponseStyle string `gorm:"column:response_style;type:text" json:"response_style"` // neutral|friendly|professional
	Theme         string `gorm:"column:theme;type:text" json:"theme"`

	Sessions pq.StringArray `gorm:"column:sessions;type:text[]" json:"sessions"`

	// JSONB, free-form UI preferences
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
