package constant

import "slices"

type ProposalStatus string

const (
	ProposalStatusDraft        ProposalStatus = "draft"
	ProposalStatusTeamBuilding ProposalStatus = "team_building"
	ProposalStatusReady        ProposalStatus = "ready"
	ProposalStatusSubmitted    ProposalStatus = "submitted"
	ProposalStatusWithdrawn    ProposalStatus = "withdrawn"
)

var ProposalStatuses = []ProposalStatus{
	ProposalStatusDraft,
	ProposalStatusTeamBuilding,
	ProposalStatusReady,
	ProposalStatusSubmitted,
	ProposalStatusWithdrawn,
}

func (s ProposalStatus) Valid() bool {
	return slices.Contains(ProposalStatuses, s)
}

type ProposalTemplate string

const (
	ProposalTemplateStandard  ProposalTemplate = "standard"
	ProposalTemplateTechnical ProposalTemplate = "technical"
	ProposalTemplateExecutive ProposalTemplate = "executive"
	ProposalTemplateCreative  ProposalTemplate = "creative"
)

var ProposalTemplates = []ProposalTemplate{
	ProposalTemplateStandard,
	ProposalTemplateTechnical,
	ProposalTemplateExecutive,
	ProposalTemplateCreative,
}

func (t ProposalTemplate) Valid() bool {
	return slices.Contains(ProposalTemplates, t)
}

type InvitationStatus string

const (
	InvitationStatusInvited  InvitationStatus = "invited"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

type ProfileVisibility string

const (
	ProfileVisibilityPrivate ProfileVisibility = "private"
	ProfileVisibilityPublic  ProfileVisibility = "public"
)

type DocumentType string

const (
	DocumentTypeCapability    DocumentType = "capability"
	DocumentTypeResume        DocumentType = "resume"
	DocumentTypeCaseStudy     DocumentType = "case_study"
	DocumentTypeCertification DocumentType = "certification"
	DocumentTypeOther         DocumentType = "other"
)

var DocumentTypes = []DocumentType{
	DocumentTypeCapability,
	DocumentTypeResume,
	DocumentTypeCaseStudy,
	DocumentTypeCertification,
	DocumentTypeOther,
}

func (d DocumentType) Valid() bool {
	return slices.Contains(DocumentTypes, d)
}
