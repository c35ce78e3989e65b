package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/kaushikmurali01/semi-portal-sub002/pkg/errors"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
)

// newMockRepository 组装全量 Mock Repository，各服务测试共享
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Company:      newMockCompanyRepo(),
		Facility:     newMockFacilityRepo(),
		Activity:     newMockActivityRepo(),
		Template:     newMockTemplateRepo(),
		Application:  newMockApplicationRepo(),
		Document:     newMockDocumentRepo(),
		Message:      newMockMessageRepo(),
		Notification: newMockNotificationRepo(),
		InviteCode:   newMockInviteCodeRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int

	createErr error // 注入 Create 失败
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListByCompany(_ context.Context, companyID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies      map[string]*model.Company
	facilityCounts map[string]int64
	appCounts      map[string]int64
	seq            int
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		companies:      make(map[string]*model.Company),
		facilityCounts: make(map[string]int64),
		appCounts:      make(map[string]int64),
	}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		m.seq++
		company.CompanyID = fmt.Sprintf("company-%d", m.seq)
	}
	company.CreatedAt = time.Now()
	company.UpdatedAt = time.Now()
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByShortName(_ context.Context, shortName string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.ShortName == shortName {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context, filters *repository.CompanyListFilters, offset, limit int) ([]model.Company, int64, error) {
	var result []model.Company
	for _, c := range m.companies {
		if filters != nil && !filters.IncludeInactive && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.companies, id)
	return nil
}

func (m *mockCompanyRepo) CountFacilities(_ context.Context, companyID string) (int64, error) {
	return m.facilityCounts[companyID], nil
}

func (m *mockCompanyRepo) CountApplications(_ context.Context, companyID string) (int64, error) {
	return m.appCounts[companyID], nil
}

// ── Mock FacilityRepository ──

type mockFacilityRepo struct {
	facilities map[string]*model.Facility
	appCounts  map[string]int64
	seq        int
}

func newMockFacilityRepo() *mockFacilityRepo {
	return &mockFacilityRepo{
		facilities: make(map[string]*model.Facility),
		appCounts:  make(map[string]int64),
	}
}

func (m *mockFacilityRepo) Create(_ context.Context, facility *model.Facility) error {
	if facility.FacilityID == "" {
		m.seq++
		facility.FacilityID = fmt.Sprintf("facility-%d", m.seq)
	}
	facility.CreatedAt = time.Now()
	facility.UpdatedAt = time.Now()
	m.facilities[facility.FacilityID] = facility
	return nil
}

func (m *mockFacilityRepo) GetByID(_ context.Context, id string) (*model.Facility, error) {
	if f, ok := m.facilities[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacilityRepo) List(_ context.Context, companyID string, offset, limit int) ([]model.Facility, int64, error) {
	var result []model.Facility
	for _, f := range m.facilities {
		if companyID != "" && f.CompanyID != companyID {
			continue
		}
		result = append(result, *f)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockFacilityRepo) Update(_ context.Context, facility *model.Facility) error {
	m.facilities[facility.FacilityID] = facility
	return nil
}

func (m *mockFacilityRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.facilities, id)
	return nil
}

func (m *mockFacilityRepo) CountApplications(_ context.Context, facilityID string) (int64, error) {
	return m.appCounts[facilityID], nil
}

func (m *mockFacilityRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.facilities)), nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities map[string]*model.Activity
	seq        int
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: make(map[string]*model.Activity)}
}

func (m *mockActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	if activity.ActivityID == "" {
		m.seq++
		activity.ActivityID = fmt.Sprintf("activity-%d", m.seq)
	}
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = time.Now()
	m.activities[activity.ActivityID] = activity
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) GetByName(_ context.Context, name string) (*model.Activity, error) {
	for _, a := range m.activities {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) List(_ context.Context) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.IsEnabled {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListAll(_ context.Context) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockActivityRepo) Update(_ context.Context, activity *model.Activity) error {
	m.activities[activity.ActivityID] = activity
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.ActivityTemplate
	fields    map[string][]model.TemplateField
	seq       int
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{
		templates: make(map[string]*model.ActivityTemplate),
		fields:    make(map[string][]model.TemplateField),
	}
}

func (m *mockTemplateRepo) Create(_ context.Context, template *model.ActivityTemplate, fields []model.TemplateField) error {
	if template.TemplateID == "" {
		m.seq++
		template.TemplateID = fmt.Sprintf("template-%d", m.seq)
	}
	template.Version = 1
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	m.templates[template.TemplateID] = template

	stored := make([]model.TemplateField, 0, len(fields))
	for i, f := range fields {
		f.FieldID = fmt.Sprintf("%s-field-%d", template.TemplateID, i+1)
		f.TemplateID = template.TemplateID
		stored = append(stored, f)
	}
	m.fields[template.TemplateID] = stored
	return nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (*model.ActivityTemplate, error) {
	if t, ok := m.templates[id]; ok {
		copied := *t
		copied.Fields = m.fields[id]
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) GetActiveByActivityPhase(_ context.Context, activityID string, phase int) (*model.ActivityTemplate, error) {
	for id, t := range m.templates {
		if t.ActivityID == activityID && t.Phase == phase && t.IsActive {
			copied := *t
			copied.Fields = m.fields[id]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) List(_ context.Context, activityID string, phase int) ([]model.ActivityTemplate, error) {
	var result []model.ActivityTemplate
	for id, t := range m.templates {
		if activityID != "" && t.ActivityID != activityID {
			continue
		}
		if phase > 0 && t.Phase != phase {
			continue
		}
		copied := *t
		copied.Fields = m.fields[id]
		result = append(result, copied)
	}
	return result, nil
}

func (m *mockTemplateRepo) Update(_ context.Context, template *model.ActivityTemplate, expectedVersion int) error {
	stored, ok := m.templates[template.TemplateID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != expectedVersion {
		return pkgerrors.ErrOptimisticLock
	}
	template.Version = expectedVersion + 1
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) ReplaceFields(_ context.Context, templateID string, fields []model.TemplateField, expectedVersion int) error {
	stored, ok := m.templates[templateID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != expectedVersion {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Version = expectedVersion + 1

	replaced := make([]model.TemplateField, 0, len(fields))
	for i, f := range fields {
		f.FieldID = fmt.Sprintf("%s-field-%d", templateID, i+1)
		f.TemplateID = templateID
		replaced = append(replaced, f)
	}
	m.fields[templateID] = replaced
	return nil
}

func (m *mockTemplateRepo) ListFields(_ context.Context, templateID string) ([]model.TemplateField, error) {
	return m.fields[templateID], nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps        map[string]*model.Application
	histories   map[string][]model.ApplicationStatusHistory
	submissions map[string][]model.ApplicationSubmission
	seq         int
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:        make(map[string]*model.Application),
		histories:   make(map[string][]model.ApplicationStatusHistory),
		submissions: make(map[string][]model.ApplicationSubmission),
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if app.ApplicationID == "" {
		m.seq++
		app.ApplicationID = fmt.Sprintf("app-%d", m.seq)
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	m.apps[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) List(_ context.Context, filters *repository.ApplicationListFilters, offset, limit int) ([]model.Application, int64, error) {
	var result []model.Application
	for _, a := range m.apps {
		if filters != nil {
			if filters.CompanyID != "" && a.CompanyID != filters.CompanyID {
				continue
			}
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
			if filters.ActivityID != "" && a.ActivityID != filters.ActivityID {
				continue
			}
		}
		result = append(result, *a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	m.apps[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) AppendHistory(_ context.Context, history *model.ApplicationStatusHistory) error {
	history.CreatedAt = time.Now()
	m.histories[history.ApplicationID] = append(m.histories[history.ApplicationID], *history)
	return nil
}

func (m *mockApplicationRepo) ListHistory(_ context.Context, applicationID string) ([]model.ApplicationStatusHistory, error) {
	return m.histories[applicationID], nil
}

func (m *mockApplicationRepo) CreateSubmission(_ context.Context, submission *model.ApplicationSubmission) error {
	submission.SubmissionID = fmt.Sprintf("sub-%d", len(m.submissions[submission.ApplicationID])+1)
	submission.CreatedAt = time.Now()
	m.submissions[submission.ApplicationID] = append(m.submissions[submission.ApplicationID], *submission)
	return nil
}

func (m *mockApplicationRepo) LatestSubmission(_ context.Context, applicationID string) (*model.ApplicationSubmission, error) {
	subs := m.submissions[applicationID]
	if len(subs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	latest := subs[len(subs)-1]
	return &latest, nil
}

func (m *mockApplicationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.apps {
		result[a.Status]++
	}
	return result, nil
}

func (m *mockApplicationRepo) CountByActivity(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.apps {
		result[a.ActivityID]++
	}
	return result, nil
}

func (m *mockApplicationRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.apps)), nil
}

func (m *mockApplicationRepo) ListRecent(_ context.Context, limit int) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.apps {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs map[string]*model.Document
	seq  int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	if doc.DocumentID == "" {
		m.seq++
		doc.DocumentID = fmt.Sprintf("doc-%d", m.seq)
	}
	doc.CreatedAt = time.Now()
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByApplication(_ context.Context, applicationID string) ([]model.Document, error) {
	var result []model.Document
	for _, d := range m.docs {
		if d.ApplicationID == applicationID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.docs, id)
	return nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	messages []model.Message
	seq      int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	m.seq++
	msg.MessageID = fmt.Sprintf("msg-%d", m.seq)
	msg.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id string) (*model.Message, error) {
	for i := range m.messages {
		if m.messages[i].MessageID == id {
			return &m.messages[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessageRepo) ListByTicket(_ context.Context, ticketNumber string) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.messages {
		if msg.TicketNumber == ticketNumber {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (m *mockMessageRepo) ListThreads(_ context.Context, companyID, status string) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.messages {
		if companyID != "" && msg.CompanyID != companyID {
			continue
		}
		if status != "" && msg.Status != status {
			continue
		}
		result = append(result, msg)
	}
	return result, nil
}

func (m *mockMessageRepo) ExistsTicket(_ context.Context, ticketNumber string) (bool, error) {
	for _, msg := range m.messages {
		if msg.TicketNumber == ticketNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMessageRepo) UpdateTicketStatus(_ context.Context, ticketNumber, status string, _ string) error {
	for i := range m.messages {
		if m.messages[i].TicketNumber == ticketNumber {
			m.messages[i].Status = status
		}
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	m.seq++
	notification.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	notification.CreatedAt = time.Now()
	m.notifications[notification.NotificationID] = notification
	return nil
}

func (m *mockNotificationRepo) BatchCreate(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		n := notifications[i]
		if err := m.Create(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock InviteCodeRepository ──

type mockInviteCodeRepo struct {
	codes map[string]*model.InviteCode
	seq   int
}

func newMockInviteCodeRepo() *mockInviteCodeRepo {
	return &mockInviteCodeRepo{codes: make(map[string]*model.InviteCode)}
}

func (m *mockInviteCodeRepo) Create(_ context.Context, code *model.InviteCode) error {
	m.seq++
	code.InviteCodeID = fmt.Sprintf("invite-%d", m.seq)
	code.CreatedAt = time.Now()
	m.codes[code.InviteCodeID] = code
	return nil
}

func (m *mockInviteCodeRepo) GetByCode(_ context.Context, code string) (*model.InviteCode, error) {
	for _, c := range m.codes {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteCodeRepo) MarkUsed(_ context.Context, inviteCodeID, usedBy string) error {
	if c, ok := m.codes[inviteCodeID]; ok {
		now := time.Now()
		c.UsedAt = &now
		c.UsedBy = &usedBy
	}
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
