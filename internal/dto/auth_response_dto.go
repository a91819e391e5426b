package dto

// LoginResponse represents the response for a successful login. Tokens are
// also set as cookies; the body echo serves non-cookie clients.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// TokenPairResponse represents the response for a successful token refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
