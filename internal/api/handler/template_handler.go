package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/service"
	pkgerrors "github.com/kaushikmurali01/semi-portal-sub002/pkg/errors"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/response"
)

// TemplateHandler 表单模板模块 HTTP 处理器
type TemplateHandler struct {
	templateSvc service.TemplateService
}

// NewTemplateHandler 创建 TemplateHandler
func NewTemplateHandler(templateSvc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// ListTemplates 获取模板列表（仅管理员）
// GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var req dto.TemplateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.templateSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetTemplate 获取模板详情（仅管理员）
// GET /api/v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模板ID不能为空")
		return
	}

	template, err := h.templateSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// GetActiveTemplate 获取活动阶段的激活模板（申请人渲染表单）
// GET /api/v1/activities/:id/template?phase=1
func (h *TemplateHandler) GetActiveTemplate(c *gin.Context) {
	activityID := c.Param("id")
	if activityID == "" {
		response.BadRequest(c, 10001, "活动ID不能为空")
		return
	}

	phase := 1
	if raw := c.Query("phase"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(c, 10001, "phase 参数无效")
			return
		}
		phase = parsed
	}

	template, err := h.templateSvc.GetActive(c.Request.Context(), activityID, phase)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// CreateTemplate 创建模板（仅管理员）
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	template, err := h.templateSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.Created(c, template)
}

// UpdateTemplate 更新模板元信息（仅管理员）
// PUT /api/v1/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模板ID不能为空")
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	template, err := h.templateSvc.Update(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// ReplaceTemplateFields 全量替换模板字段（仅管理员）
// PUT /api/v1/templates/:id/fields
func (h *TemplateHandler) ReplaceTemplateFields(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "模板ID不能为空")
		return
	}

	var req dto.ReplaceFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	template, err := h.templateSvc.ReplaceFields(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// handleTemplateError 统一处理模板模块业务错误
func (h *TemplateHandler) handleTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 15001, "模板不存在")
	case errors.Is(err, service.ErrTemplateConflict):
		response.Conflict(c, 15002, "同一活动阶段已存在激活模板")
	case errors.Is(err, service.ErrFieldOptionsNeeded):
		response.BadRequest(c, 15003, "select 字段必须提供选项")
	case errors.Is(err, service.ErrPhaseOutOfRange):
		response.BadRequest(c, 15004, "阶段超出活动允许范围")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 15005, "活动不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15006, "模板已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/template_handler.go
