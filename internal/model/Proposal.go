package model

import (
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"gorm.io/datatypes"
)

type Proposal struct {
	BaseModel
	Title           string                    `gorm:"type:text;not null" json:"title"`
	Status          constant.ProposalStatus   `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Content         datatypes.JSON            `gorm:"type:jsonb" json:"content"`
	Score           int                       `gorm:"not null;default:0" json:"score"`
	Template        constant.ProposalTemplate `gorm:"type:varchar(20);not null;default:'standard'" json:"template"`
	ExportedAt      *time.Time                `gorm:"type:timestamptz;default:null" json:"exportedAt"`
	SubmittedAt     *time.Time                `gorm:"type:timestamptz;default:null" json:"submittedAt"`
	WithdrawnReason string                    `gorm:"type:text;default:null" json:"withdrawnReason,omitempty"`

	UserID string `gorm:"type:text;not null;index" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	RFPUploadID *string    `gorm:"type:text;default:null;index" json:"rfpUploadId"`
	RFPUpload   *RFPUpload `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"rfpUpload,omitempty"`
}

func (p Proposal) TableName() string {
	return "proposals"
}

func (p Proposal) IsOwner(userID string) bool {
	return p.UserID == userID
}

// SetStatus moves the proposal to any enumerated status. Submission time is stamped the
// first time it becomes submitted.
func (p *Proposal) SetStatus(status constant.ProposalStatus, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	p.Status = status
	if status == constant.ProposalStatusSubmitted && p.SubmittedAt == nil {
		p.SubmittedAt = &now
	}
	return nil
}

// ClampScore keeps scorecard output inside 0..100.
func ClampScore(score int) int {
	return max(0, min(100, score))
}
