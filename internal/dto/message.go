package dto

// ── 支持消息模块 DTO ──

// CreateMessageRequest 发起工单请求（首条消息）
type CreateMessageRequest struct {
	Subject string `json:"subject" binding:"required,min=2,max=200"`
	Body    string `json:"body"    binding:"required,min=1,max=5000"`
	// CompanyID 管理员主动发起工单时指定目标企业，申请人忽略该字段
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// ReplyMessageRequest 回复工单请求
type ReplyMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

// ThreadListRequest 工单列表查询参数
type ThreadListRequest struct {
	PaginationRequest
	Status    string `form:"status"     binding:"omitempty,oneof=open closed"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"` // 管理端过滤；申请人强制为本企业
}

// MessageResponse 单条消息响应
type MessageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	Body       string `json:"body"`
	IsAdmin    bool   `json:"is_admin"`
	CreatedAt  string `json:"created_at"`
}

// ThreadResponse 工单会话响应（按工单号聚合）
type ThreadResponse struct {
	TicketNumber string            `json:"ticket_number"`
	Subject      string            `json:"subject"`
	Status       string            `json:"status"`
	CompanyID    string            `json:"company_id"`
	CompanyName  string            `json:"company_name,omitempty"`
	MessageCount int               `json:"message_count"`
	LastActivity string            `json:"last_activity"`
	Messages     []MessageResponse `json:"messages,omitempty"` // 详情接口返回，列表接口省略
}
