package dto

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8,max=32"`
	ReferralCode string `json:"referral_code"`
}

type RegisterResponse struct {
	UserID       int64  `json:"user_id"`
	ReferralCode string `json:"referral_code"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type UserInfo struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	ReferralCode string `json:"referral_code"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}
