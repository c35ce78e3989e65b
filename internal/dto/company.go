package dto

// ── 企业模块 DTO ──

// CreateCompanyRequest 创建企业请求（管理端）
type CreateCompanyRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=200"`
	ShortName string `json:"short_name" binding:"required,min=2,max=50"`
	Address   string `json:"address"    binding:"omitempty,max=500"`
	Website   string `json:"website"    binding:"omitempty,max=255"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
}

// UpdateCompanyRequest 更新企业请求
type UpdateCompanyRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=200"`
	ShortName *string `json:"short_name" binding:"omitempty,min=2,max=50"`
	Address   *string `json:"address"    binding:"omitempty,max=500"`
	Website   *string `json:"website"    binding:"omitempty,max=255"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
	IsActive  *bool   `json:"is_active"`
}

// CompanyListRequest 企业列表查询参数
type CompanyListRequest struct {
	PaginationRequest
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CompanyDetailResponse 企业详细信息响应
type CompanyDetailResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	Address       string `json:"address,omitempty"`
	Website       string `json:"website,omitempty"`
	Phone         string `json:"phone,omitempty"`
	IsActive      bool   `json:"is_active"`
	FacilityCount int64  `json:"facility_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
