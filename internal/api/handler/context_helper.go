package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetCompanyID 提取 company_id；管理员账号无所属企业时为空串。
func GetCompanyID(c *gin.Context) string {
	v, exists := c.Get("company_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// TenantScope 返回数据访问的企业范围。
// 管理员返回空串（跨企业），申请人返回本企业 ID。
func TenantScope(c *gin.Context) (string, bool) {
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}
	if role == model.RoleAdmin {
		return "", true
	}
	companyID := GetCompanyID(c)
	if companyID == "" {
		response.Forbidden(c, 10003, "账号未关联企业")
		return "", false
	}
	return companyID, true
}
