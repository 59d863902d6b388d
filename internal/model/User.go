package model

type User struct {
	BaseModel
	Email        string `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	FirstName    string `gorm:"type:varchar(50);not null;" json:"firstName" form:"firstName" binding:"required"`
	LastName     string `gorm:"type:varchar(50);not null;" json:"lastName" form:"lastName" binding:"required"`
	PasswordHash string `gorm:"type:text;default:null" json:"-"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
