package dto

// ── 申请模块 DTO ──

// CreateApplicationRequest 创建申请草稿请求
type CreateApplicationRequest struct {
	FacilityID string `json:"facility_id" binding:"required,uuid"`
	ActivityID string `json:"activity_id" binding:"required,uuid"`
	Phase      int    `json:"phase"       binding:"omitempty,min=1,max=10"`
	Title      string `json:"title"       binding:"required,min=2,max=200"`
}

// SaveSubmissionRequest 保存动态表单请求（多步表单分步保存）
type SaveSubmissionRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// ReviewApplicationRequest 管理员审核请求
type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=under_review approved rejected needs_revision"`
	Note   string `json:"note"   binding:"omitempty,max=2000"`
}

// ApplicationListRequest 申请列表查询参数
type ApplicationListRequest struct {
	PaginationRequest
	Status     string `form:"status"      binding:"omitempty,oneof=draft submitted under_review approved rejected needs_revision"`
	ActivityID string `form:"activity_id" binding:"omitempty,uuid"`
	CompanyID  string `form:"company_id"  binding:"omitempty,uuid"` // 管理端过滤；申请人强制为本企业
}

// ApplicationResponse 申请摘要响应
type ApplicationResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Phase        int    `json:"phase"`
	CompanyID    string `json:"company_id"`
	CompanyName  string `json:"company_name,omitempty"`
	FacilityID   string `json:"facility_id"`
	FacilityName string `json:"facility_name,omitempty"`
	ActivityID   string `json:"activity_id"`
	ActivityName string `json:"activity_name,omitempty"`
	SubmittedAt  string `json:"submitted_at,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ApplicationDetailResponse 申请详细信息响应
type ApplicationDetailResponse struct {
	ApplicationResponse
	TemplateID    string                  `json:"template_id,omitempty"`
	ReviewerNote  string                  `json:"reviewer_note,omitempty"`
	ReviewedAt    string                  `json:"reviewed_at,omitempty"`
	Values        map[string]string       `json:"values,omitempty"` // 最近一次提交的表单值
	Fields        []TemplateFieldResponse `json:"fields,omitempty"`
	StatusHistory []StatusHistoryResponse `json:"status_history,omitempty"`
}

// StatusHistoryResponse 状态流转历史响应
type StatusHistoryResponse struct {
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Note       string `json:"note,omitempty"`
	ChangedBy  string `json:"changed_by,omitempty"`
	CreatedAt  string `json:"created_at"`
}
