package model

import (
	"encoding/json"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"gorm.io/datatypes"
)

type CompanyProfile struct {
	BaseModel
	CompanyName     string                      `gorm:"type:varchar(255);not null" json:"companyName"`
	Industry        string                      `gorm:"type:varchar(120);default:null;index" json:"industry"`
	Description     string                      `gorm:"type:text;default:null" json:"description"`
	Website         string                      `gorm:"type:text;default:null" json:"website"`
	Services        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"services"`
	Certifications  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"certifications"`
	YearsInBusiness int                         `gorm:"not null;default:0" json:"yearsInBusiness"`
	EmployeeCount   int                         `gorm:"not null;default:0" json:"employeeCount"`
	Visibility      constant.ProfileVisibility  `gorm:"type:varchar(20);not null;default:'private'" json:"visibility"`
	ContactInfo     datatypes.JSON              `gorm:"type:jsonb" json:"contactInfo"`

	UserID string `gorm:"type:text;not null;uniqueIndex" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (cp CompanyProfile) TableName() string {
	return "company_profiles"
}

func (cp CompanyProfile) IsPublic() bool {
	return cp.Visibility == constant.ProfileVisibilityPublic
}

// ContactInfo is the document stored in company_profiles.contact_info. Keys other than these
// are kept in the column but ignored by the server.
type ContactInfo struct {
	Email             string             `json:"email,omitempty"`
	Phone             string             `json:"phone,omitempty"`
	Address           string             `json:"address,omitempty"`
	Teams             []Team             `json:"teams,omitempty"`
	TeamMembers       []TeamMember       `json:"teamMembers,omitempty"`
	IndustryPlaybooks []IndustryPlaybook `json:"industryPlaybooks,omitempty"`
}

type Team struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds,omitempty"`
}

type TeamMember struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name"`
	Role       string   `json:"role,omitempty"`
	Email      string   `json:"email,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate float64  `json:"hourlyRate,omitempty"`
}

// IndustryPlaybook bundles industry specific vocabulary applied while generating proposals.
type IndustryPlaybook struct {
	Name               string   `json:"name"`
	Industry           string   `json:"industry"`
	GlossaryTerms      []string `json:"glossaryTerms,omitempty"`
	KPIs               []string `json:"kpis,omitempty"`
	ComplianceProfiles []string `json:"complianceProfiles,omitempty"`
	PromptTemplate     string   `json:"promptTemplate,omitempty"`
}

// ParsedContactInfo decodes the contact_info blob. An empty or malformed blob yields a zero
// value so callers can treat it as "nothing filled in".
func (cp CompanyProfile) ParsedContactInfo() ContactInfo {
	var info ContactInfo
	if len(cp.ContactInfo) == 0 {
		return info
	}
	_ = json.Unmarshal(cp.ContactInfo, &info)
	return info
}

// MatchPlaybook returns the playbook whose industry matches the given industry, falling back
// to the profile's own industry.
func (cp CompanyProfile) MatchPlaybook(industry string) *IndustryPlaybook {
	playbooks := cp.ParsedContactInfo().IndustryPlaybooks
	for _, want := range []string{industry, cp.Industry} {
		if want == "" {
			continue
		}
		for i := range playbooks {
			if strings.EqualFold(strings.TrimSpace(playbooks[i].Industry), strings.TrimSpace(want)) {
				return &playbooks[i]
			}
		}
	}
	return nil
}
