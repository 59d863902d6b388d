package model

import "time"

type PasswordReset struct {
	BaseModel
	// sha256 of the token mailed to the user
	TokenHash string     `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"type:timestamptz;not null" json:"expiresAt"`
	UsedAt    *time.Time `gorm:"type:timestamptz;default:null" json:"usedAt"`

	UserID string `gorm:"type:text;not null;index" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (pr PasswordReset) TableName() string {
	return "password_resets"
}

func (pr PasswordReset) Usable(now time.Time) bool {
	return pr.UsedAt == nil && now.Before(pr.ExpiresAt)
}
