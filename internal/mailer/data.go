package mailer

type TeamInvitationData struct {
	InviteeEmail  string  `json:"inviteeEmail"`
	InviterName   string  `json:"inviterName"`
	ProposalID    string  `json:"proposalId"`
	ProposalTitle string  `json:"proposalTitle"`
	Role          string  `json:"role"`
	RateMin       float64 `json:"rateMin"`
	RateMax       float64 `json:"rateMax"`
	InvitationURL string  `json:"invitationUrl"`
}

type InvitationResponseData struct {
	OwnerName     string `json:"ownerName"`
	MemberEmail   string `json:"memberEmail"`
	ProposalID    string `json:"proposalId"`
	ProposalTitle string `json:"proposalTitle"`
	Role          string `json:"role"`
	Accepted      bool   `json:"accepted"`
	ProposalURL   string `json:"proposalUrl"`
}

type LeadNotificationData struct {
	CompanyName string `json:"companyName"`
	QRCodeName  string `json:"qrCodeName"`
	Campaign    string `json:"campaign"`
	LeadName    string `json:"leadName"`
	LeadEmail   string `json:"leadEmail"`
	LeadPhone   string `json:"leadPhone"`
	LeadCompany string `json:"leadCompany"`
	Message     string `json:"message"`
}

type LeadWelcomeData struct {
	LeadName    string `json:"leadName"`
	CompanyName string `json:"companyName"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type PasswordResetData struct {
	FirstName string `json:"firstName"`
	ResetURL  string `json:"resetUrl"`
	ExpiresIn string `json:"expiresIn"`
}
