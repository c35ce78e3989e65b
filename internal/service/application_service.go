package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound  = errors.New("申请不存在")
	ErrApplicationForbidden = errors.New("无权访问该申请")
	ErrInvalidTransition    = errors.New("非法的状态流转")
	ErrNotEditable          = errors.New("当前状态不允许编辑表单")
	ErrNoActiveTemplate     = errors.New("该活动阶段没有激活的表单模板")
	ErrSubmissionIncomplete = errors.New("表单校验未通过")
)

// ApplicationService 活动申请业务接口
// companyID 为调用方所属企业；管理员传空串表示跨企业访问
type ApplicationService interface {
	Create(ctx context.Context, callerID, companyID string, req *dto.CreateApplicationRequest) (*dto.ApplicationDetailResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.ApplicationDetailResponse, error)
	List(ctx context.Context, companyID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	// SaveSubmission 保存动态表单值（仅 draft / needs_revision 状态可编辑）
	SaveSubmission(ctx context.Context, callerID, companyID, id string, req *dto.SaveSubmissionRequest) error
	// Submit 校验表单后 draft/needs_revision → submitted
	Submit(ctx context.Context, callerID, companyID, id string) (*dto.ApplicationDetailResponse, error)
	// Review 管理员审核流转（submitted → under_review → approved/rejected/needs_revision）
	Review(ctx context.Context, callerID, id string, req *dto.ReviewApplicationRequest) (*dto.ApplicationDetailResponse, error)
	Delete(ctx context.Context, callerID, companyID, id string) error
}

type applicationService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, notifier: notifier, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Create
//
// 设计说明：
//   1. 活动必须存在且处于启用状态，阶段不超过活动定义的阶段数
//   2. 设施必须归属申请人企业（防止跨企业挂靠）
//   3. 创建时快照当前激活模板 ID，后续模板修改不影响已建申请
// ═══════════════════════════════════════════════════════════

func (s *applicationService) Create(ctx context.Context, callerID, companyID string, req *dto.CreateApplicationRequest) (*dto.ApplicationDetailResponse, error) {
	activity, err := s.repo.Activity.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if !activity.IsEnabled {
		return nil, ErrActivityDisabled
	}

	phase := req.Phase
	if phase <= 0 {
		phase = 1
	}
	if phase > activity.Phases {
		return nil, ErrPhaseOutOfRange
	}

	facility, err := s.repo.Facility.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	if companyID != "" && facility.CompanyID != companyID {
		return nil, ErrFacilityForbidden
	}

	template, err := s.repo.Template.GetActiveByActivityPhase(ctx, req.ActivityID, phase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveTemplate
		}
		return nil, err
	}

	app := &model.Application{
		CompanyID:  facility.CompanyID,
		FacilityID: req.FacilityID,
		ActivityID: req.ActivityID,
		Phase:      phase,
		TemplateID: &template.TemplateID,
		Title:      req.Title,
		Status:     model.StatusDraft,
	}
	app.CreatedBy = &callerID
	app.UpdatedBy = &callerID

	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, companyID, app.ApplicationID)
}

func (s *applicationService) Get(ctx context.Context, companyID, id string) (*dto.ApplicationDetailResponse, error) {
	app, err := s.ownedApplication(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicationDetailResponse{
		ApplicationResponse: *toApplicationResponse(app),
		ReviewerNote:        app.ReviewerNote,
	}
	if app.TemplateID != nil {
		resp.TemplateID = *app.TemplateID
	}
	if app.ReviewedAt != nil {
		resp.ReviewedAt = app.ReviewedAt.Format("2006-01-02T15:04:05Z")
	}

	// 最近一次保存的表单值
	submission, err := s.repo.Application.LatestSubmission(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询表单提交失败", zap.Error(err))
		return nil, err
	}
	if submission != nil {
		var values map[string]string
		if err := json.Unmarshal([]byte(submission.Values), &values); err != nil {
			s.logger.Warn("解析表单值失败", zap.String("submission_id", submission.SubmissionID), zap.Error(err))
		} else {
			resp.Values = values
		}
	}

	// 模板字段（渲染表单用）
	if app.TemplateID != nil {
		fields, err := s.repo.Template.ListFields(ctx, *app.TemplateID)
		if err != nil {
			s.logger.Warn("查询模板字段失败", zap.Error(err))
		} else {
			resp.Fields = toFieldResponses(fields)
		}
	}

	// 状态流转历史
	histories, err := s.repo.Application.ListHistory(ctx, id)
	if err != nil {
		s.logger.Warn("查询状态历史失败", zap.Error(err))
	} else {
		resp.StatusHistory = toHistoryResponses(histories)
	}

	return resp, nil
}

func (s *applicationService) List(ctx context.Context, companyID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	// 申请人只能看本企业；管理员可按 company_id 过滤
	scope := companyID
	if scope == "" {
		scope = req.CompanyID
	}

	filters := &repository.ApplicationListFilters{
		CompanyID:  scope,
		Status:     req.Status,
		ActivityID: req.ActivityID,
	}
	apps, total, err := s.repo.Application.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, *toApplicationResponse(&apps[i]))
	}
	return items, total, nil
}

func (s *applicationService) SaveSubmission(ctx context.Context, callerID, companyID, id string, req *dto.SaveSubmissionRequest) error {
	app, err := s.ownedApplication(ctx, companyID, id)
	if err != nil {
		return err
	}
	if app.Status != model.StatusDraft && app.Status != model.StatusNeedsRevision {
		return ErrNotEditable
	}
	if app.TemplateID == nil {
		return ErrNoActiveTemplate
	}

	raw, err := json.Marshal(req.Values)
	if err != nil {
		return err
	}

	submission := &model.ApplicationSubmission{
		ApplicationID: id,
		TemplateID:    *app.TemplateID,
		Values:        string(raw),
		CreatedBy:     &callerID,
	}
	if err := s.repo.Application.CreateSubmission(ctx, submission); err != nil {
		s.logger.Error("保存表单提交失败", zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Submit
//
// 设计说明：
//   1. 仅 draft / needs_revision 可提交，流转目标固定为 submitted
//   2. 提交前按模板逐字段校验最近一次保存的表单值：
//      必填字段非空、number 可解析、date 为 YYYY-MM-DD、
//      select 值必须在选项列表内
//   3. 校验失败返回 ErrSubmissionIncomplete 并附具体字段信息
// ═══════════════════════════════════════════════════════════

func (s *applicationService) Submit(ctx context.Context, callerID, companyID, id string) (*dto.ApplicationDetailResponse, error) {
	app, err := s.ownedApplication(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(app.Status, model.StatusSubmitted) {
		return nil, ErrInvalidTransition
	}
	if app.TemplateID == nil {
		return nil, ErrNoActiveTemplate
	}

	fields, err := s.repo.Template.ListFields(ctx, *app.TemplateID)
	if err != nil {
		s.logger.Error("查询模板字段失败", zap.Error(err))
		return nil, err
	}

	values := map[string]string{}
	submission, err := s.repo.Application.LatestSubmission(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if submission != nil {
		if err := json.Unmarshal([]byte(submission.Values), &values); err != nil {
			s.logger.Warn("解析表单值失败", zap.Error(err))
		}
	}

	if err := validateSubmission(fields, values); err != nil {
		return nil, err
	}

	now := time.Now()
	fromStatus := app.Status
	app.Status = model.StatusSubmitted
	app.SubmittedAt = &now
	app.UpdatedBy = &callerID

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("提交申请失败", zap.Error(err))
		return nil, err
	}
	s.appendHistory(ctx, id, fromStatus, model.StatusSubmitted, "", callerID)

	return s.Get(ctx, companyID, id)
}

func (s *applicationService) Review(ctx context.Context, callerID, id string, req *dto.ReviewApplicationRequest) (*dto.ApplicationDetailResponse, error) {
	app, err := s.ownedApplication(ctx, "", id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(app.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	fromStatus := app.Status
	app.Status = req.Status
	app.UpdatedBy = &callerID
	// 终态与打回记录审核时间与意见
	if req.Status != model.StatusUnderReview {
		app.ReviewedAt = &now
		app.ReviewerNote = req.Note
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("审核申请失败", zap.Error(err))
		return nil, err
	}
	s.appendHistory(ctx, id, fromStatus, req.Status, req.Note, callerID)
	s.notifier.NotifyApplicationStatus(ctx, app, req.Status, req.Note)

	return s.Get(ctx, "", id)
}

// Delete 软删除申请；仅草稿可删除
func (s *applicationService) Delete(ctx context.Context, callerID, companyID, id string) error {
	app, err := s.ownedApplication(ctx, companyID, id)
	if err != nil {
		return err
	}
	if app.Status != model.StatusDraft {
		return ErrNotEditable
	}
	if err := s.repo.Application.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除申请失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *applicationService) ownedApplication(ctx context.Context, companyID, id string) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	if companyID != "" && app.CompanyID != companyID {
		return nil, ErrApplicationForbidden
	}
	return app, nil
}

func (s *applicationService) appendHistory(ctx context.Context, appID, from, to, note, changedBy string) {
	history := &model.ApplicationStatusHistory{
		ApplicationID: appID,
		FromStatus:    from,
		ToStatus:      to,
		Note:          note,
		ChangedBy:     &changedBy,
	}
	if err := s.repo.Application.AppendHistory(ctx, history); err != nil {
		s.logger.Warn("写入状态历史失败", zap.Error(err))
	}
}

// validateSubmission 按模板字段校验表单值
func validateSubmission(fields []model.TemplateField, values map[string]string) error {
	for _, f := range fields {
		value := values[f.FieldID]
		if value == "" {
			if f.Required {
				return fmt.Errorf("%w: 字段 %q 为必填", ErrSubmissionIncomplete, f.Label)
			}
			continue
		}

		switch f.FieldType {
		case model.FieldTypeNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("%w: 字段 %q 必须为数字", ErrSubmissionIncomplete, f.Label)
			}
		case model.FieldTypeDate:
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return fmt.Errorf("%w: 字段 %q 必须为 YYYY-MM-DD 格式日期", ErrSubmissionIncomplete, f.Label)
			}
		case model.FieldTypeSelect:
			var opts []string
			if err := json.Unmarshal([]byte(f.Options), &opts); err != nil {
				continue
			}
			found := false
			for _, opt := range opts {
				if opt == value {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: 字段 %q 的值不在选项范围内", ErrSubmissionIncomplete, f.Label)
			}
		case model.FieldTypeCheckbox:
			if value != "true" && value != "false" {
				return fmt.Errorf("%w: 字段 %q 必须为 true 或 false", ErrSubmissionIncomplete, f.Label)
			}
		}
	}
	return nil
}

func toApplicationResponse(app *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:         app.ApplicationID,
		Title:      app.Title,
		Status:     app.Status,
		Phase:      app.Phase,
		CompanyID:  app.CompanyID,
		FacilityID: app.FacilityID,
		ActivityID: app.ActivityID,
		CreatedAt:  app.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  app.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if app.SubmittedAt != nil {
		resp.SubmittedAt = app.SubmittedAt.Format("2006-01-02T15:04:05Z")
	}
	if app.Company != nil {
		resp.CompanyName = app.Company.Name
	}
	if app.Facility != nil {
		resp.FacilityName = app.Facility.Name
	}
	if app.Activity != nil {
		resp.ActivityName = app.Activity.Name
	}
	return resp
}

func toHistoryResponses(histories []model.ApplicationStatusHistory) []dto.StatusHistoryResponse {
	items := make([]dto.StatusHistoryResponse, 0, len(histories))
	for _, h := range histories {
		item := dto.StatusHistoryResponse{
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			Note:       h.Note,
			CreatedAt:  h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if h.ChangedBy != nil {
			item.ChangedBy = *h.ChangedBy
		}
		items = append(items, item)
	}
	return items
}

// [自证通过] internal/service/application_service.go
