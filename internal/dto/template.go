package dto

// ── 模板模块 DTO ──

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	ActivityID  string               `json:"activity_id" binding:"required,uuid"`
	Phase       int                  `json:"phase"       binding:"omitempty,min=1,max=10"`
	Name        string               `json:"name"        binding:"required,min=2,max=200"`
	Description string               `json:"description" binding:"omitempty,max=500"`
	Fields      []TemplateFieldInput `json:"fields"      binding:"omitempty,dive"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
	Version     int     `json:"version"     binding:"required,min=1"` // 乐观锁
}

// ReplaceFieldsRequest 全量替换字段列表请求（按数组顺序重排 sort_order）
type ReplaceFieldsRequest struct {
	Fields  []TemplateFieldInput `json:"fields"  binding:"required,dive"`
	Version int                  `json:"version" binding:"required,min=1"` // 乐观锁
}

// TemplateFieldInput 模板字段输入
type TemplateFieldInput struct {
	Label       string   `json:"label"       binding:"required,min=1,max=200"`
	FieldType   string   `json:"field_type"  binding:"required,oneof=text textarea number date select checkbox file"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"     binding:"omitempty,max=100,dive,max=200"` // 仅 select 使用
	Placeholder string   `json:"placeholder" binding:"omitempty,max=200"`
}

// TemplateListRequest 模板列表查询参数
type TemplateListRequest struct {
	ActivityID string `form:"activity_id" binding:"omitempty,uuid"`
	Phase      int    `form:"phase"       binding:"omitempty,min=1,max=10"`
}

// TemplateFieldResponse 模板字段响应
type TemplateFieldResponse struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	FieldType   string   `json:"field_type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	SortOrder   int      `json:"sort_order"`
}

// TemplateDetailResponse 模板详细信息响应
type TemplateDetailResponse struct {
	ID           string                  `json:"id"`
	ActivityID   string                  `json:"activity_id"`
	ActivityName string                  `json:"activity_name,omitempty"`
	Phase        int                     `json:"phase"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description,omitempty"`
	IsActive     bool                    `json:"is_active"`
	Version      int                     `json:"version"`
	Fields       []TemplateFieldResponse `json:"fields"`
	CreatedAt    string                  `json:"created_at"`
	UpdatedAt    string                  `json:"updated_at"`
}
