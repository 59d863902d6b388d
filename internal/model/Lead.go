package model

type Lead struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:citext;not null" json:"email"`
	Phone   string `gorm:"type:varchar(50);default:null" json:"phone"`
	Company string `gorm:"type:varchar(255);default:null" json:"company"`
	Message string `gorm:"type:text;default:null" json:"message"`

	QRCodeID  string         `gorm:"type:text;not null;index" json:"qrCodeId"`
	QRCode    QRCode         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ProfileID string         `gorm:"type:text;not null;index" json:"profileId"`
	Profile   CompanyProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (l Lead) TableName() string {
	return "leads"
}
