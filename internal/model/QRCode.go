package model

type QRCode struct {
	BaseModel
	UniqueCode string `gorm:"type:varchar(32);not null;uniqueIndex" json:"uniqueCode"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	Campaign   string `gorm:"type:varchar(255);default:null" json:"campaign"`
	ScanCount  int64  `gorm:"not null;default:0" json:"scanCount"`
	IsActive   bool   `gorm:"not null;default:true" json:"isActive"`

	ProfileID string         `gorm:"type:text;not null;index" json:"profileId"`
	Profile   CompanyProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (q QRCode) TableName() string {
	return "qr_codes"
}
