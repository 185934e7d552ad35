package dto

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@pandu.go.id"`
	Password string `json:"password" binding:"required" example:"Admin123!"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`        // seconds
	RefreshExpiresIn int    `json:"refreshExpiresIn"` // seconds
	TokenType        string `json:"tokenType" example:"Bearer"`
}
