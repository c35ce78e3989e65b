package dto

// ── 设施模块 DTO ──

// CreateFacilityRequest 创建设施请求
// NAICS 三级选择提交原始编码，NAICS Code 由服务端推导
type CreateFacilityRequest struct {
	CompanyID     string `json:"company_id"     binding:"omitempty,uuid"` // 管理端代建时使用；申请人忽略
	Name          string `json:"name"           binding:"required,min=2,max=200"`
	Address       string `json:"address"        binding:"omitempty,max=500"`
	City          string `json:"city"           binding:"omitempty,max=100"`
	Province      string `json:"province"       binding:"omitempty,max=50"`
	PostalCode    string `json:"postal_code"    binding:"omitempty,max=20"`
	NAICSSector   string `json:"naics_sector"   binding:"omitempty,max=10"`
	NAICSCategory string `json:"naics_category" binding:"omitempty,max=10"`
	NAICSType     string `json:"naics_type"     binding:"omitempty,max=10"`
}

// UpdateFacilityRequest 更新设施请求
type UpdateFacilityRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=200"`
	Address       *string `json:"address"        binding:"omitempty,max=500"`
	City          *string `json:"city"           binding:"omitempty,max=100"`
	Province      *string `json:"province"       binding:"omitempty,max=50"`
	PostalCode    *string `json:"postal_code"    binding:"omitempty,max=20"`
	NAICSSector   *string `json:"naics_sector"   binding:"omitempty,max=10"`
	NAICSCategory *string `json:"naics_category" binding:"omitempty,max=10"`
	NAICSType     *string `json:"naics_type"     binding:"omitempty,max=10"`
}

// FacilityListRequest 设施列表查询参数
type FacilityListRequest struct {
	PaginationRequest
	CompanyID string `form:"company_id" binding:"omitempty,uuid"` // 管理端过滤；申请人强制为本企业
}

// FacilityDetailResponse 设施详细信息响应
type FacilityDetailResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Province      string `json:"province,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	NAICSSector   string `json:"naics_sector,omitempty"`
	NAICSCategory string `json:"naics_category,omitempty"`
	NAICSType     string `json:"naics_type,omitempty"`
	NAICSCode     string `json:"naics_code,omitempty"`
	NAICSTitle    string `json:"naics_title,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
