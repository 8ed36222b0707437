package model

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type OAuth2VerifyRequest struct {
	Type    string `json:"type"`
	IDToken string `json:"id_token"`
}

type OAuth2VerifyResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type ConnectWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type ConnectWalletResponse struct{}
