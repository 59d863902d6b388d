package model

import "github.com/SeakMengs/AutoRFP/internal/constant"

type Document struct {
	BaseModel
	Type constant.DocumentType `gorm:"type:varchar(30);not null;default:'other'" json:"type"`
	File File                  `gorm:"embedded" json:"file"`

	ProfileID string         `gorm:"type:text;not null;index" json:"profileId"`
	Profile   CompanyProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (d Document) TableName() string {
	return "documents"
}
