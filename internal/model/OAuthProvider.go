package model

type OAuthProvider struct {
	BaseModel
	ProviderType   string `gorm:"type:varchar(50);not null;" json:"providerType"`
	ProviderUserId string `gorm:"unique;not null;type:text" json:"providerUserId"`
	AccessToken    string `gorm:"type:text; default:null" json:"-"`
	RefreshToken   string `gorm:"type:text; default:null" json:"-"`
	UserID         string `gorm:"type:text;not null" json:"userId"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (op OAuthProvider) TableName() string {
	return "oauth_providers"
}
