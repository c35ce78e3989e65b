package dto

// ── 活动模块 DTO ──

// CreateActivityRequest 创建活动请求
type CreateActivityRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Phases      int    `json:"phases"      binding:"omitempty,min=1,max=10"`
}

// UpdateActivityRequest 更新活动请求
type UpdateActivityRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Phases      *int    `json:"phases"      binding:"omitempty,min=1,max=10"`
	IsEnabled   *bool   `json:"is_enabled"`
}

// ActivityListRequest 活动列表查询参数
type ActivityListRequest struct {
	IncludeDisabled bool `form:"include_disabled"`
}

// ActivityDetailResponse 活动详细信息响应
type ActivityDetailResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Phases      int    `json:"phases"`
	IsEnabled   bool   `json:"is_enabled"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
