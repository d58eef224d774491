package model

// AccessToken is the object embedded in access token claims.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RefreshToken is the object embedded in refresh token claims.
type RefreshToken struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
