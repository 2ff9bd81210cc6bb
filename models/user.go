package models

import "time"

type User struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string  `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber *string `gorm:"uniqueIndex" json:"phone_number,omitempty"`

	// Hashed password, never serialized
	PasswordHash string `gorm:"not null" json:"-"`

	// Optional recovery question/answer pair used to authorize password
	// resets. The answer is stored as a hash of its normalized
	// (trimmed, lowercased) form.
	RecoveryQuestion   *string `json:"-"`
	RecoveryAnswerHash *string `json:"-"`

	CartItems []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
