package domain

// LoginParams are the credentials sent to /auth/login.
type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
