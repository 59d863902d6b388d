package model

import "time"

type ProposalStageTime struct {
	BaseModel
	Stage       string     `gorm:"type:varchar(60);not null;index" json:"stage"`
	StartedAt   time.Time  `gorm:"type:timestamptz;not null" json:"startedAt"`
	CompletedAt *time.Time `gorm:"type:timestamptz;default:null" json:"completedAt"`

	ProposalID string   `gorm:"type:text;not null;index" json:"proposalId"`
	Proposal   Proposal `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (s ProposalStageTime) TableName() string {
	return "proposal_stage_times"
}

func (s ProposalStageTime) Duration() (time.Duration, bool) {
	if s.CompletedAt == nil {
		return 0, false
	}
	return s.CompletedAt.Sub(s.StartedAt), true
}
