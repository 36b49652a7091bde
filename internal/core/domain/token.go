package domain

// TokenTypeBearer is the only token type issued by this service.
const TokenTypeBearer = "bearer"

// AccessToken is the stateless credential returned to clients. It is never
// persisted server-side; everything needed to verify it travels inside the
// signed token string.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}
