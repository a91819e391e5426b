package domain

// User represents an identity in the domain.
//
// PasswordHash and RefreshToken are secret fields: they never cross the trust
// boundary (dto.ToUserResponse strips them) and RefreshToken holds at most the
// single currently valid refresh token for the identity. An empty RefreshToken
// means the user is logged out or was never issued one.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	RefreshToken string `json:"-"`
	AuditFields
}
