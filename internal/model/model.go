package model

// All returns every table in migration order.
func All() []any {
	return []any{
		&User{},
		&Token{},
		&PasswordReset{},
		&OAuthProvider{},
		&CompanyProfile{},
		&Document{},
		&RFPUpload{},
		&Proposal{},
		&ProposalTeamInvitation{},
		&ProposalStageTime{},
		&QRCode{},
		&Lead{},
	}
}
