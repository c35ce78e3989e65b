package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// RegisterRequest 注册请求（企业 + 首个用户一步完成）
type RegisterRequest struct {
	InviteCode       string `json:"invite_code"        binding:"omitempty,max=50"`
	CompanyName      string `json:"company_name"       binding:"required,min=2,max=200"`
	CompanyShortName string `json:"company_short_name" binding:"required,min=2,max=50"`
	Name             string `json:"name"               binding:"required,min=2,max=100"`
	Email            string `json:"email"              binding:"required,email"`
	Password         string `json:"password"           binding:"required,min=8,max=72"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// GenerateInviteRequest 生成邀请码请求
type GenerateInviteRequest struct {
	// 预留：可指定有效期等；当前按配置 TTL 生成
}

// InviteResponse 邀请码响应
type InviteResponse struct {
	InviteCode string `json:"invite_code"`
	InviteURL  string `json:"invite_url"`
	ExpiresAt  string `json:"expires_at"`
}

// InviteValidateResponse 邀请码验证响应
type InviteValidateResponse struct {
	Valid     bool   `json:"valid"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
