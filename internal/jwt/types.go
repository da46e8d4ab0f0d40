package jwt

type Role int

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Member is the identity carried inside tokens. It is a projection of the
// stored member record, never the record itself.
type Member struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}
