package model

import "time"

// 申请状态
const (
	StatusDraft         = "draft"
	StatusSubmitted     = "submitted"
	StatusUnderReview   = "under_review"
	StatusApproved      = "approved"
	StatusRejected      = "rejected"
	StatusNeedsRevision = "needs_revision"
)

// StatusTransitions 申请状态机：from → 允许的 to 集合
var StatusTransitions = map[string][]string{
	StatusDraft:         {StatusSubmitted},
	StatusSubmitted:     {StatusUnderReview},
	StatusUnderReview:   {StatusApproved, StatusRejected, StatusNeedsRevision},
	StatusNeedsRevision: {StatusSubmitted},
}

// CanTransition 判断状态流转是否合法
func CanTransition(from, to string) bool {
	for _, t := range StatusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Application 活动申请表 — 对应 applications
type Application struct {
	ApplicationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	CompanyID     string     `gorm:"type:uuid;not null"                             json:"company_id"`
	FacilityID    string     `gorm:"type:uuid;not null"                             json:"facility_id"`
	ActivityID    string     `gorm:"type:uuid;not null"                             json:"activity_id"`
	Phase         int        `gorm:"not null;default:1"                             json:"phase"`
	TemplateID    *string    `gorm:"type:uuid"                                      json:"template_id,omitempty"`
	Title         string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Status        string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	ReviewerNote  string     `gorm:"type:text"                                      json:"reviewer_note,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	VersionedModel

	// 关联
	Company  *Company  `gorm:"foreignKey:CompanyID;references:CompanyID"    json:"company,omitempty"`
	Facility *Facility `gorm:"foreignKey:FacilityID;references:FacilityID"  json:"facility,omitempty"`
	Activity *Activity `gorm:"foreignKey:ActivityID;references:ActivityID"  json:"activity,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// ApplicationStatusHistory 状态流转历史表 — 对应 application_status_histories
type ApplicationStatusHistory struct {
	HistoryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"history_id"`
	ApplicationID string    `gorm:"type:uuid;not null"                             json:"application_id"`
	FromStatus    string    `gorm:"type:varchar(20);not null"                      json:"from_status"`
	ToStatus      string    `gorm:"type:varchar(20);not null"                      json:"to_status"`
	Note          string    `gorm:"type:text"                                      json:"note,omitempty"`
	ChangedBy     *string   `gorm:"type:uuid"                                      json:"changed_by,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ApplicationStatusHistory) TableName() string { return "application_status_histories" }

// ApplicationSubmission 动态表单提交表 — 对应 application_submissions
// Values 为 {field_id: value} 的 JSON 对象字符串，每次保存新增一行，最新一行生效
type ApplicationSubmission struct {
	SubmissionID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	ApplicationID string    `gorm:"type:uuid;not null"                             json:"application_id"`
	TemplateID    string    `gorm:"type:uuid;not null"                             json:"template_id"`
	Values        string    `gorm:"type:text;not null"                             json:"values"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy     *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
}

// TableName 指定表名
func (ApplicationSubmission) TableName() string { return "application_submissions" }

// [自证通过] internal/model/application.go
