package model

import (
	"time"

	"gorm.io/datatypes"
)

type RFPUpload struct {
	BaseModel
	File          File   `gorm:"embedded" json:"file"`
	ExtractedText string `gorm:"type:text;not null;default:''" json:"extractedText,omitempty"`
	PageCount     int    `gorm:"not null;default:0" json:"pageCount"`

	// Fields filled in by the AI parser
	Title              string         `gorm:"type:text;default:null" json:"title"`
	ClientName         string         `gorm:"type:text;default:null" json:"clientName"`
	Industry           string         `gorm:"type:varchar(120);default:null" json:"industry"`
	Requirements       datatypes.JSON `gorm:"type:jsonb" json:"requirements"`
	EvaluationCriteria datatypes.JSON `gorm:"type:jsonb" json:"evaluationCriteria"`
	Timeline           datatypes.JSON `gorm:"type:jsonb" json:"timeline"`
	Budget             string         `gorm:"type:text;default:null" json:"budget"`
	ParsedAt           *time.Time     `gorm:"type:timestamptz;default:null" json:"parsedAt"`
	ParseError         string         `gorm:"type:text;default:null" json:"parseError,omitempty"`
	Validated          bool           `gorm:"not null;default:false" json:"validated"`

	ProfileID string         `gorm:"type:text;not null;index" json:"profileId"`
	Profile   CompanyProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (r RFPUpload) TableName() string {
	return "rfp_uploads"
}

// IsParsed reports whether the AI parser has run successfully on this upload.
func (r RFPUpload) IsParsed() bool {
	return r.ParsedAt != nil
}

// DisplayName is the parsed title when present, otherwise the uploaded file name.
func (r RFPUpload) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.File.FileName
}
